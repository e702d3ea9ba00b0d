package plan

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes exposes the pricing catalog without authentication.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans", h.ListActive)
}

// RegisterRoutes registers staff-only plan administration routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/admin/plans")
	{
		plans.GET("", h.List)
		plans.GET("/:id", h.Get)
		plans.POST("", h.Create)
		plans.PUT("/:id", h.Update)
		plans.DELETE("/:id", h.Deactivate)
	}
}
