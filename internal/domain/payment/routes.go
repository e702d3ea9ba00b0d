package payment

import "github.com/gin-gonic/gin"

// RegisterRoutes registers staff-only billing routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Create)
		payments.GET("/:id", h.Get)
		payments.PATCH("/:id/processing", h.StartProcessing)
		payments.PATCH("/:id/confirm", h.Confirm)
		payments.PATCH("/:id/fail", h.Fail)
		payments.PATCH("/:id/cancel", h.Cancel)
		payments.PATCH("/:id/refund", h.Refund)
		payments.PATCH("/:id/discount", h.ApplyDiscount)
	}

	rg.GET("/students/:id/payments", h.ListByStudent)

	// Collection report, kept off /payments/:id to avoid a route clash
	rg.GET("/reports/payments/overdue", h.ListOverdue)
}
