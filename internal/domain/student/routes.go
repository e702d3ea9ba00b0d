package student

import "github.com/gin-gonic/gin"

// RegisterRoutes registers staff-only student administration routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	students := rg.Group("/students")
	{
		students.POST("", h.Enroll)
		students.GET("", h.List)
		students.GET("/:id", h.Get)
		students.PUT("/:id", h.Update)
		students.PATCH("/:id/status", h.ChangeStatus)
	}
}
