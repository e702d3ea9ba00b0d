package checkin

import "github.com/gin-gonic/gin"

// RegisterRoutes registers front-desk admission routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	checkins := rg.Group("/checkins")
	{
		checkins.POST("", h.CheckIn)
		checkins.GET("/today", h.ListToday)
		checkins.PATCH("/:id/checkout", h.CheckOut)
	}

	rg.GET("/students/:id/checkins", h.ListByStudent)
}
