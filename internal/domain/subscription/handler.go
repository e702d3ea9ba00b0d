package subscription

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
// @Summary Open a new membership period (pending until paid)
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param body body CreateRequest true "Student, plan and start date"
// @Success 201 {object} Response
// @Router /subscriptions [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	sub, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, h.toResponse(sub))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	sub, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(sub))
}

// ListByStudent godoc
// @Summary List a student's subscription history
// @Tags Subscriptions
// @Router /students/{id}/subscriptions [get]
func (h *Handler) ListByStudent(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid student ID")
		return
	}

	subs, err := h.service.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.DomainError(c, err)
		return
	}

	resp := make([]*Response, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, h.toResponse(sub))
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Activate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	sub, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(sub))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	sub, err := h.service.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(sub))
}

func (h *Handler) Suspend(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	sub, err := h.service.Suspend(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(sub))
}

func (h *Handler) Extend(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	sub, err := h.service.Extend(c.Request.Context(), id, req.Days)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.toResponse(sub))
}

func (h *Handler) toResponse(sub *Subscription) *Response {
	return &Response{
		Subscription:  sub,
		DaysRemaining: sub.DaysRemaining(h.clk.Now()),
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid subscription ID")
		return 0, false
	}
	return id, true
}
