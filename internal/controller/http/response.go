package http

import (
	"net/http"

	"vidtube/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// Envelope is the shape every endpoint responds with. Data is omitted
// on errors.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
	})
}

// respondError translates a failure into the error envelope. Errors
// outside the known taxonomy collapse to a generic 500 so internals
// never leak to clients.
func respondError(c *gin.Context, err error) {
	status := apperr.StatusOf(err)
	c.JSON(status, Envelope{
		StatusCode: status,
		Message:    apperr.MessageOf(err),
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{
		StatusCode: http.StatusBadRequest,
		Message:    message,
	})
}
