package middleware

import (
	"net/http"
	"strings"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. The verified
// claims become the actor for every downstream operation; roles are never read
// from client-supplied headers or bodies.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("userName", claims.Name)
		c.Set("userRole", models.NormalizeRole(claims.Role))

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the user role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "User role not found in token claims. Ensure AuthMiddleware runs first."})
			c.Abort()
			return
		}

		roleStr, ok := userRole.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User role in token is not a string"})
			c.Abort()
			return
		}

		allowed := false
		for _, r := range allowedRoles {
			if strings.EqualFold(roleStr, r) {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource. Required roles: " + strings.Join(allowedRoles, ", ")})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ActorFromContext rebuilds the authenticated principal set by AuthMiddleware.
func ActorFromContext(c *gin.Context) models.Actor {
	actor := models.Actor{}
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(int64); ok {
			actor.UserID = id
		}
	}
	if v, ok := c.Get("userName"); ok {
		if name, ok := v.(string); ok {
			actor.UserName = name
		}
	}
	if actor.UserName == "" {
		if v, ok := c.Get("username"); ok {
			if name, ok := v.(string); ok {
				actor.UserName = name
			}
		}
	}
	if v, ok := c.Get("userRole"); ok {
		if role, ok := v.(string); ok {
			actor.Role = role
		}
	}
	return actor
}
