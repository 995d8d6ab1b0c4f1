package api

import (
	"net/http" // HTTP status codes
	"time"     // Time durations

	"fin_api/internal/domain"     // Operation types
	"fin_api/internal/ledger"     // Ledger engine and queries
	"fin_api/internal/middleware" // JWT middleware
	"fin_api/internal/users"      // User service

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/redis/go-redis/v9"                            // Redis client
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Users     *users.Service
	Engine    *ledger.Engine
	Query     *ledger.Query
	Redis     *redis.Client // Optional read cache
	CacheTTL  time.Duration
	JWTSecret string
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.Default() // Gin router instance

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // Prometheus exposition

	v1 := r.Group("/api/v1")
	v1.POST("/users", CreateUserHandler(deps.Users))       // Registration endpoint
	v1.POST("/sessions", CreateSessionHandler(deps.Users)) // Login endpoint

	// Routes below require a bearer token
	auth := v1.Group("")
	auth.Use(middleware.JWTAuthMiddleware(deps.JWTSecret))
	auth.GET("/profile", ShowProfileHandler(deps.Users, deps.Redis, deps.CacheTTL)) // Profile endpoint

	statements := auth.Group("/statements")
	statements.GET("/balance", GetBalanceHandler(deps.Query, deps.Redis, deps.CacheTTL))                    // Balance endpoint
	statements.POST("/deposit", CreateStatementHandler(deps.Engine, domain.OperationDeposit, deps.Redis))   // Deposit endpoint
	statements.POST("/withdraw", CreateStatementHandler(deps.Engine, domain.OperationWithdraw, deps.Redis)) // Withdraw endpoint
	statements.GET("/:statement_id", GetStatementHandler(deps.Query, deps.Redis, deps.CacheTTL))            // Statement endpoint

	return r
}
