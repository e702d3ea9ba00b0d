package subscription

import "github.com/gin-gonic/gin"

// RegisterRoutes registers staff-only subscription lifecycle routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscriptions")
	{
		subs.POST("", h.Create)
		subs.GET("/:id", h.Get)
		subs.PATCH("/:id/activate", h.Activate)
		subs.PATCH("/:id/cancel", h.Cancel)
		subs.PATCH("/:id/suspend", h.Suspend)
		subs.PATCH("/:id/extend", h.Extend)
	}

	rg.GET("/students/:id/subscriptions", h.ListByStudent)
}
