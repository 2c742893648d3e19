package handler

import (
	"net/http"
	"strings"

	"github.com/eventhub/backend/internal/model"
	"github.com/eventhub/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const authUserKey = "auth_user"

// AuthMiddleware verifies the bearer session token before any handler
// logic runs and attaches the decoded identity to the context.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "No token provided."})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if !strings.HasPrefix(header, "Bearer ") || token == "" {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "Token missing."})
			c.Abort()
			return
		}

		user, err := authService.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "Invalid token."})
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

// StaffOnly requires the is_staff claim from the verified token. The
// claim is trusted as issued; no store lookup happens per request.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil || !user.IsStaff {
			c.JSON(http.StatusForbidden, model.ErrorResponse{Message: "Access denied. Staff only."})
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
