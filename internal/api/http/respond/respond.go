// Package respond shapes every JSON response: the {"data", "paging"}
// envelope on success and {"error_code", "message"} on failure.
package respond

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"
)

type Paging struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type ErrorBody struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func Data(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}

func List(c *gin.Context, data any, paging Paging) {
	c.JSON(http.StatusOK, gin.H{"data": data, "paging": paging})
}

// Error maps err to its HTTP status. Anything that is not a domain error is
// a 500; the cause is attached to the context for the request logger and
// never echoed to the client.
func Error(c *gin.Context, err error) {
	if e, ok := apperror.As(err); ok {
		c.AbortWithStatusJSON(StatusFor(e.Kind), ErrorBody{ErrorCode: e.Code, Message: e.Message})
		return
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
		ErrorCode: apperror.CodeInternal,
		Message:   "internal server error",
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.Validation(message))
}

func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ParseID reads a positive integer path parameter. On failure it writes a
// 400 and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
