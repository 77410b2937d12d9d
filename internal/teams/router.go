package teams

import "github.com/gin-gonic/gin"

// SetupTeamRoutes configures the remote store API
func SetupTeamRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/teams", controller.ListTeams)             // GET /api/teams
	rg.GET("/booked-slots", controller.BookedSlots)    // GET /api/booked-slots
	rg.POST("/register-team", controller.RegisterTeam) // POST /api/register-team
}
