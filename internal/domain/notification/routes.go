package notification

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/students/:id/notifications", h.ListByStudent)
	rg.PATCH("/students/:id/notifications/:nid/read", h.MarkAsRead)
	// PATCH on the collection marks everything read
	rg.PATCH("/students/:id/notifications", h.MarkAllAsRead)
}
