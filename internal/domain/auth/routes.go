package auth

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes exposes the unauthenticated login endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// RegisterStaffRoutes exposes endpoints behind staff auth.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

// RegisterAdminRoutes exposes admin-only staff management.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/staff", h.Register)
}
