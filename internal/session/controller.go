package session

import (
	"errors"
	"net/http"

	"padang/internal/shared/middleware"
	"padang/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	manager *Manager
}

func NewController(manager *Manager) *Controller {
	return &Controller{manager: manager}
}

// GetSession godoc
// @Summary Current selection and paid hold of the browser session
// @Router /session [get]
func (c *Controller) GetSession(ctx *gin.Context) {
	sessionID := middleware.GetSessionID(ctx)
	state, err := c.manager.Get(ctx.Request.Context(), sessionID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrMissingSession) {
			statusCode = http.StatusUnauthorized
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to load session", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Session retrieved successfully", state.ToResponse(sessionID), nil)
}

// SetupSessionRoutes configures the session inspection route
func SetupSessionRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/session", middleware.RequireSession(), controller.GetSession) // GET /api/v1/session
}
