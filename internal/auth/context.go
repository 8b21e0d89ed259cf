package auth

import "github.com/gin-gonic/gin"

const (
	ctxUserID   = "userID"
	ctxUserName = "userName"
	ctxUserRole = "userRole"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func GetUserName(c *gin.Context) string {
	return c.GetString(ctxUserName)
}

func GetUserRole(c *gin.Context) string {
	return c.GetString(ctxUserRole)
}
