package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Signal names the abstract feedback cue the client renders as a tone and
// toast.
const (
	SignalSuccess = "success"
	SignalError   = "error"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Signal  string `json:"signal"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
		Signal:  SignalError,
	})
}
