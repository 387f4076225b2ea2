// Package handlers implements the HTTP request handlers for the analysis,
// ingestion, precedent and health endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps an application error to its HTTP status via the error
// code taxonomy.  Server-side error messages are masked; the code still
// identifies the failure class for the client.
func respondError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := apperrors.HTTPStatusForCode(code)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = apperrors.DefaultMessageForCode(code)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    code.String(),
		Message: message,
	})
}
