package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondValidationErrors returns 400 with the failing fields keyed to their
// messages, so clients can attach errors to individual inputs.
func RespondValidationErrors(c *gin.Context, validationErrors map[string][]string) {
	c.JSON(http.StatusBadRequest, JSONResponse{
		Status:  false,
		Message: "The request model is invalid.",
		Data:    gin.H{"validationErrors": validationErrors},
	})
}
