package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credtrailhq/credtrail/internal/models"
)

// RequireRole returns Gin middleware that rejects requests whose
// authenticated user ranks below min. It must run after Auth.
func RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(c.GetString(CtxUserRole))
		if !role.AtLeast(min) {
			respondError(c, http.StatusForbidden, "forbidden", "insufficient role")
			return
		}

		c.Next()
	}
}
