package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"academia/internal/pkg/response"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListByStudent godoc
// @Summary List a student's portal notifications
// @Tags Notifications
// @Produce json
// @Router /students/{id}/notifications [get]
func (h *Handler) ListByStudent(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid student ID")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := h.repo.ListByStudent(c.Request.Context(), studentID, limit)
	if err != nil {
		response.DomainError(c, err)
		return
	}
	unread, err := h.repo.CountUnread(c.Request.Context(), studentID)
	if err != nil {
		unread = 0
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": list, "unread": unread})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	studentID, err1 := strconv.ParseInt(c.Param("id"), 10, 64)
	notifID, err2 := strconv.ParseInt(c.Param("nid"), 10, 64)
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return
	}

	if err := h.repo.MarkAsRead(c.Request.Context(), notifID, studentID); err != nil {
		response.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid student ID")
		return
	}

	if err := h.repo.MarkAllAsRead(c.Request.Context(), studentID); err != nil {
		response.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
