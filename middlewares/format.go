package middlewares

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yogimardilah/klinik-api/utils"
)

// RespondData writes a success envelope: {"data": ..., "message": ...}.
// The message is omitted when empty.
func RespondData(c *gin.Context, status int, data interface{}, message string) {
	body := gin.H{"data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// RespondPage writes a paginated list envelope.
func RespondPage(c *gin.Context, data interface{}, total int64, page, perPage int) {
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": gin.H{
			"total":    total,
			"page":     page,
			"per_page": perPage,
		},
	})
}

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	body := gin.H{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// NotFound writes the standard 404 body.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

// ValidationError writes a 422 with field-keyed messages when err is a
// validation error. Returns false when err is not one, leaving the response
// untouched.
func ValidationError(c *gin.Context, err error) bool {
	fields := utils.FieldErrors(err)
	if fields == nil {
		return false
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  fields,
	})
	return true
}
