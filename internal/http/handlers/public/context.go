package public

import (
	"github.com/egzit/egzit/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// getUserID pulls the authenticated user id from the request context.
func getUserID(c *gin.Context) (uint, bool) {
	return shared.GetContextUint(c, "user_id")
}
