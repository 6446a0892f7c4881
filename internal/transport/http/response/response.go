package response

import "github.com/gin-gonic/gin"

// ErrorBody is the uniform failure shape: a short human-readable message,
// never internal detail.
type ErrorBody struct {
	Error string `json:"error"`
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}
