package handlers

import "github.com/gin-gonic/gin"

// getUserID reads the authenticated user ID set by the auth middleware.
func getUserID(c *gin.Context) uint64 {
	value, ok := c.Get("userID")
	if !ok {
		return 0
	}
	id, ok := value.(uint64)
	if !ok {
		return 0
	}
	return id
}
