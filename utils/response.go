package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the uniform envelope for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// ValidationError reports per-field form errors without creating anything.
func ValidationError(ctx *gin.Context, code int, fields map[string]string) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"code":    code,
		"message": "validation failed",
		"errors":  fields,
	})
}

// Redirect answers a successful mutation with the post-action location.
func Redirect(ctx *gin.Context, location string) {
	ctx.Redirect(http.StatusFound, location)
}
