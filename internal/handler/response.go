package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"terptickets/internal/domain"
	"terptickets/internal/forms"
	"terptickets/internal/middleware"
	"terptickets/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response. Fields carries per-field
// validation messages keyed by input name; the "_form" key holds
// form-level messages.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondInvalid sends a 422 response carrying the full field error map
// from the authoritative validation pass.
func RespondInvalid(c *gin.Context, errs forms.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    "VALIDATION_FAILED",
			Message: "validation failed",
			Fields:  errs,
		},
	})
}

// RespondFailed sends a 502 response for a submission that cleared
// validation but failed at a collaborator. The collaborator's message is
// passed through verbatim.
func RespondFailed(c *gin.Context, outcome *service.Outcome) {
	requestID := c.GetString(middleware.ContextKeyRequestID)
	log.Printf("[%s] submission failed at stage %s: %s", requestID, outcome.Stage, outcome.Reason)
	c.JSON(http.StatusBadGateway, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    stageCode(outcome.Stage),
			Message: outcome.Reason,
		},
	})
}

func stageCode(stage service.Stage) string {
	switch stage {
	case service.StageIdentity:
		return "IDENTITY_FAILED"
	case service.StageUpload:
		return "UPLOAD_FAILED"
	case service.StageWrite:
		return "WRITE_FAILED"
	default:
		return "SUBMIT_FAILED"
	}
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already registered"
	case errors.Is(err, domain.ErrSubmitInFlight):
		return http.StatusConflict, "SUBMIT_IN_FLIGHT", "a submission is already in progress"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID := c.GetString(middleware.ContextKeyRequestID)
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
