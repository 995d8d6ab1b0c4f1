package api

import (
	"net/http" // HTTP status codes

	"fin_api/internal/domain" // Domain errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps a domain error kind to its HTTP status
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUserNotFound, domain.KindStatementNotFound:
		return http.StatusNotFound
	case domain.KindInsufficientFunds, domain.KindInvalidAmount, domain.KindInvalidOperation, domain.KindUserAlreadyExists:
		return http.StatusBadRequest
	case domain.KindMissingCredential, domain.KindInvalidCredential, domain.KindIncorrectEmailOrPassword:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a {"message": ...} envelope.
// Errors that are not domain errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	if kind == domain.KindUnknown {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Route
			"error": err.Error(),  // Error message
		}).Error("Request failed") // Log unexpected failure
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(statusFor(kind), gin.H{"message": err.Error()})
}
