// Package respond implements the uniform response envelope shared by every
// endpoint. All success and failure paths converge here so that the wire
// shape is identical across routes and no handler ever hand-constructs a
// response body.
//
// Success:
//
//	{ "success": true, "data": <payload>, "meta": { "timestamp": "..." } }
//
// Error:
//
//	{ "success": false,
//	  "error": { "message": "...", "code": "...", "details": ... },
//	  "meta": { "timestamp": "..." } }
//
// Exactly one of data/error is present; meta.timestamp is set when the
// envelope is built, not when the request started.
package respond

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Meta carries envelope metadata common to success and error responses.
type Meta struct {
	Timestamp string `json:"timestamp" example:"2026-01-02T15:04:05Z"`
}

// ErrorBody is the wire error shape nested in failed envelopes.
type ErrorBody struct {
	Message string `json:"message" example:"Tour not found"`
	Code    string `json:"code,omitempty" example:"not_found"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the tagged union emitted on every response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
	Meta    Meta       `json:"meta"`
}

func meta() Meta {
	return Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

// Success writes the success envelope with the given payload and status.
// Pass http.StatusCreated for resource creation, http.StatusOK otherwise.
func Success(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{Success: true, Data: data, Meta: meta()})
}

// Error writes the error envelope and aborts the request so no later
// handler runs. This is the single place that serializes the wire error
// shape.
func Error(c *gin.Context, status int, message, code string, details any) {
	body := &ErrorBody{Message: message, Code: code, Details: details}
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: body, Meta: meta()})
}
