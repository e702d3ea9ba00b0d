package payment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"academia/internal/pkg/clock"
	"academia/internal/pkg/response"
)

type Handler struct {
	service *Service
	clk     clock.Clock
}

func NewHandler(service *Service, clk clock.Clock) *Handler {
	return &Handler{service: service, clk: clk}
}

// Create godoc
// @Summary Register a payment obligation
// @Tags Payments
// @Accept json
// @Produce json
// @Param body body CreateRequest true "Payment data"
// @Success 201 {object} Payment
// @Router /payments [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) ListByStudent(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid student ID")
		return
	}

	payments, err := h.service.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}

// ListOverdue godoc
// @Summary List payments past their due date
// @Tags Payments
// @Produce json
// @Success 200 {array} OverdueResponse
// @Router /reports/payments/overdue [get]
func (h *Handler) ListOverdue(c *gin.Context) {
	payments, err := h.service.ListOverdue(c.Request.Context())
	if err != nil {
		response.DomainError(c, err)
		return
	}

	now := h.clk.Now()
	resp := make([]*OverdueResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, &OverdueResponse{Payment: p, DaysPastDue: p.DaysPastDue(now)})
	}
	response.Success(c, http.StatusOK, resp)
}

// Confirm godoc
// @Summary Confirm a payment; activates the linked subscription atomically
// @Tags Payments
// @Router /payments/{id}/confirm [patch]
func (h *Handler) Confirm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ConfirmRequest
	_ = c.ShouldBindJSON(&req)
	if req.ConfirmedBy == "" {
		req.ConfirmedBy = c.GetString("role")
	}

	p, err := h.service.Confirm(c.Request.Context(), id, &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) StartProcessing(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := h.service.StartProcessing(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Fail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	p, err := h.service.Fail(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	p, err := h.service.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Refund godoc
// @Summary Refund a paid payment (full by default)
// @Tags Payments
// @Router /payments/{id}/refund [patch]
func (h *Handler) Refund(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req RefundRequest
	_ = c.ShouldBindJSON(&req)

	p, err := h.service.Refund(c.Request.Context(), id, &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) ApplyDiscount(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	p, err := h.service.ApplyDiscount(c.Request.Context(), id, &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return 0, false
	}
	return id, true
}
