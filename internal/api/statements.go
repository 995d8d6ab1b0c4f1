package api

import (
	"net/http" // HTTP status codes
	"time"     // Time durations

	"fin_api/internal/domain"     // Importing domain models
	"fin_api/internal/ledger"     // Ledger engine and queries
	"fin_api/internal/middleware" // Authenticated user lookup
	"fin_api/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// cacheHeader reports whether a read was served from Redis
const cacheHeader = "X-Cache"

// StatementRequest represents a deposit or withdraw request
type StatementRequest struct {
	Amount      decimal.Decimal `json:"amount"`      // Positive, at most two decimal places
	Description string          `json:"description"` // Free text annotation
}

// CreateStatementHandler appends a deposit or withdraw statement for the authenticated user
func CreateStatementHandler(engine *ledger.Engine, op domain.OperationType, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get userID from context
		if !ok {
			respondError(c, domain.ErrMissingCredential)
			return
		}
		var req StatementRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		statement, err := engine.CreateStatement(ctx, userID, op, req.Amount, req.Description)
		if err != nil {
			// Log the rejection with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,              // User ID
				"type":    op,                  // Operation type
				"amount":  req.Amount.String(), // Requested amount
				"error":   err.Error(),         // Error message
			}).Warn("Statement rejected")
			respondError(c, err)
			return
		}
		// Log successful operation
		logrus.WithFields(logrus.Fields{
			"user_id":      userID,                    // User ID
			"statement_id": statement.ID,              // Statement ID
			"type":         op,                        // Operation type
			"amount":       statement.Amount.String(), // Amount
		}).Info("Statement created")
		// Move to a new balance generation so no earlier view is served again
		if err := utils.BumpBalanceGeneration(ctx, rdb, userID); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Warn("Failed to invalidate balance cache")
		}
		c.JSON(http.StatusCreated, statement) // Return the created statement
	}
}

// GetBalanceHandler returns the authenticated user's statements and balance
func GetBalanceHandler(query *ledger.Query, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get userID from context
		if !ok {
			respondError(c, domain.ErrMissingCredential)
			return
		}
		ctx := c.Request.Context()
		// Generation is read before the history, a concurrent append bumps it past this view
		generation, genErr := utils.BalanceGeneration(ctx, rdb, userID)
		cacheKey := utils.BalanceKey(userID, generation) // Cache key for this generation
		var cached domain.Balance
		// If found in cache, return it
		if genErr == nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.Header(cacheHeader, "HIT")
				c.JSON(http.StatusOK, cached)
				return
			}
		}
		balance, err := query.GetBalance(ctx, userID)
		if err != nil {
			respondError(c, err) // User not found
			return
		}
		if genErr == nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, balance, ttl) // Cache the balance view
		}
		c.Header(cacheHeader, "MISS")
		c.JSON(http.StatusOK, balance)
	}
}

// GetStatementHandler returns one statement owned by the authenticated user
func GetStatementHandler(query *ledger.Query, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get userID from context
		if !ok {
			respondError(c, domain.ErrMissingCredential)
			return
		}
		statementID := c.Param("statement_id")
		ctx := c.Request.Context()
		cacheKey := utils.StatementKey(userID, statementID) // Statements are immutable, safe to cache
		var cached domain.Statement
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.Header(cacheHeader, "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		statement, err := query.GetStatement(ctx, userID, statementID)
		if err != nil {
			respondError(c, err) // User or statement not found
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, statement, ttl)
		c.Header(cacheHeader, "MISS")
		c.JSON(http.StatusOK, statement)
	}
}
