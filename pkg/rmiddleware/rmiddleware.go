package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crease/internal/middleware"
	responses "github.com/DhavalSuthar-24/crease/pkg/matchresponse"
	"github.com/DhavalSuthar-24/crease/pkg/token"
)

// RoleMiddleware admits requests whose token role is one of requiredRoles.
// It must run after middleware.AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := middleware.GetRoleFromContext(c)
		if err != nil {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized: "+err.Error())
			return
		}
		for _, required := range requiredRoles {
			if strings.EqualFold(role, required) {
				c.Next()
				return
			}
		}
		responses.ErrorResponse(c, http.StatusForbidden, "You don't have permission to access this resource")
	}
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(token.RoleAdmin)
}

// ScorerOrAdminMiddleware admits anyone allowed to score a match.
func ScorerOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(token.RoleScorer, token.RoleAdmin)
}
