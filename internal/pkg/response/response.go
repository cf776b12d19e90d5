package response

import "github.com/gin-gonic/gin"

// ErrorBody is the machine-readable part of a failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type messageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, successEnvelope{Success: true, Data: data})
}

// Message answers with a bare confirmation and no payload.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageEnvelope{Success: true, Message: message})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, errorEnvelope{Error: ErrorBody{Code: code, Message: message}})
}
