package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"academia/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// DomainError maps an apperr kind to the HTTP status the dashboard expects.
// Unclassified errors become a generic 500 without leaking internals.
func DomainError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		Error(c, http.StatusNotFound, string(apperr.KindNotFound), err.Error())
	case apperr.KindValidation:
		Error(c, http.StatusBadRequest, string(apperr.KindValidation), err.Error())
	case apperr.KindInvalidState:
		Error(c, http.StatusConflict, string(apperr.KindInvalidState), err.Error())
	case apperr.KindBusinessRule:
		Error(c, http.StatusUnprocessableEntity, string(apperr.KindBusinessRule), err.Error())
	case apperr.KindExternal:
		Error(c, http.StatusBadGateway, string(apperr.KindExternal), err.Error())
	default:
		Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
