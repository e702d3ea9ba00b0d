package checkin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"academia/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CheckIn godoc
// @Summary Admit a student into the facility
// @Description Fails when the student is not active, has no active plan, or
// @Description already checked in today.
// @Tags Checkins
// @Accept json
// @Produce json
// @Param body body CheckInRequest true "Student id"
// @Success 201 {object} Checkin
// @Router /checkins [post]
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	ck, err := h.service.CheckIn(c.Request.Context(), req.StudentID)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ck)
}

// CheckOut godoc
// @Summary Close an open visit
// @Tags Checkins
// @Router /checkins/{id}/checkout [patch]
func (h *Handler) CheckOut(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid checkin ID")
		return
	}

	ck, err := h.service.CheckOut(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ck)
}

func (h *Handler) ListByStudent(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid student ID")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	checkins, err := h.service.ListByStudent(c.Request.Context(), studentID, limit, offset)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, checkins)
}

func (h *Handler) ListToday(c *gin.Context) {
	checkins, err := h.service.ListToday(c.Request.Context())
	if err != nil {
		response.DomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, checkins)
}
