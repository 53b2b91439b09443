package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/shared/constants"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

// getUserID reads the user placed in the context by the access gate and
// writes a 401 when there is none.
func getUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
		return 0, false
	}
	return userID, true
}
