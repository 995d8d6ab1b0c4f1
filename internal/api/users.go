package api

import (
	"net/http" // HTTP status codes
	"time"     // Time durations

	"fin_api/internal/domain"     // Importing domain models
	"fin_api/internal/middleware" // Authenticated user lookup
	"fin_api/internal/users"      // User service
	"fin_api/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Request struct for registration
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`           // Name must be provided
	Email    string `json:"email" binding:"required,email"`    // Valid email must be provided
	Password string `json:"password" binding:"required,min=6"` // Password must be provided
}

// Request struct for login
type CreateSessionRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// CreateUserHandler registers a new user
func CreateUserHandler(svc *users.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		user, err := svc.Create(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, err) // Duplicate email or storage failure
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // User ID
		}).Info("User registered")
		c.Status(http.StatusCreated) // Return success response
	}
}

// CreateSessionHandler authenticates a user and returns the user with a JWT token
func CreateSessionHandler(svc *users.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		session, err := svc.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err) // Incorrect email or password
			return
		}
		c.JSON(http.StatusOK, session) // Return the user and token
	}
}

// ShowProfileHandler returns the authenticated user's profile
func ShowProfileHandler(svc *users.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get userID from context
		if !ok {
			respondError(c, domain.ErrMissingCredential)
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.ProfileKey(userID) // Cache key for profile
		var user domain.User
		// If found in cache, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &user); err == nil && found {
			c.Header(cacheHeader, "HIT")
			c.JSON(http.StatusOK, user)
			return
		}
		profile, err := svc.Profile(ctx, userID)
		if err != nil {
			respondError(c, err) // User not found
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, profile, ttl) // Cache the profile
		c.Header(cacheHeader, "MISS")
		c.JSON(http.StatusOK, profile)
	}
}
