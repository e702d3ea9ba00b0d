package article

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes exposes the read-only portal surface.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/articles", h.ListPublished)
	rg.GET("/articles/:id", h.GetPublished)
}

// RegisterStaffRoutes exposes the write surface behind staff auth.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/articles", h.List)
	rg.POST("/admin/articles", h.Create)
	rg.PATCH("/admin/articles/:id", h.Update)
	rg.DELETE("/admin/articles/:id", h.Delete)
}
