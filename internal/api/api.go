// Package api contains the HTTP handlers. Handlers translate between the
// wire and the service layer; all recommendation, generation and allocation
// logic lives in internal/service and internal/nutrition.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userID extracts the authenticated user id stored by the auth middleware.
func userID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}
