package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billing-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	StaffIDKey    = "staff_id"
	StaffEmailKey = "staff_email"
	StaffRoleKey  = "staff_role"
)

// AuthMiddleware requires a valid bearer token and stores the staff claims in the context
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(StaffIDKey, claims.StaffID)
		c.Set(StaffEmailKey, claims.Email)
		c.Set(StaffRoleKey, enum.StaffRole(claims.Role))

		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles
func RequireRole(roles ...enum.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(StaffRoleKey)
		role, ok := value.(enum.StaffRole)
		if !exists || !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
