package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/reachway/reachway/internal/auth/domain"
	campaigndomain "github.com/reachway/reachway/internal/campaign/domain"
	companydomain "github.com/reachway/reachway/internal/company/domain"
	messagedomain "github.com/reachway/reachway/internal/message/domain"
	prospectdomain "github.com/reachway/reachway/internal/prospect/domain"
	"github.com/reachway/reachway/internal/providers/upstream"
	signupdomain "github.com/reachway/reachway/internal/signup/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

// errorResponse is the failure half of the response envelope. Every
// success path renders {"success": true, "data": ...} instead.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorResponse{
			Error:   "validation error",
			Details: vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorResponse{
			Error: "validation error",
			Details: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	var provErr *upstream.Error
	if errors.As(err, &provErr) {
		return http.StatusBadGateway, errorResponse{
			Error: "upstream provider error",
			Details: gin.H{
				"provider": provErr.Provider,
				"status":   provErr.Status,
				"message":  provErr.Message,
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized"}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "forbidden"}
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, prospectdomain.ErrDuplicate):
		return http.StatusConflict, errorResponse{Error: "conflict"}
	case errors.Is(err, messagedomain.ErrDailyLimitReached):
		return http.StatusTooManyRequests, errorResponse{Error: "daily contact limit reached"}
	case isNotFoundError(err):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, signupdomain.ErrInvalidRequest):
		return true
	case isCompanyValidationError(err),
		isCampaignValidationError(err),
		isProspectValidationError(err),
		isMessageValidationError(err),
		isAuthValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, campaigndomain.ErrNotFound),
		errors.Is(err, prospectdomain.ErrNotFound),
		errors.Is(err, messagedomain.ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isCompanyValidationError(err error) bool {
	switch {
	case errors.Is(err, companydomain.ErrInvalidName),
		errors.Is(err, companydomain.ErrInvalidTier):
		return true
	default:
		return false
	}
}

func isCampaignValidationError(err error) bool {
	switch {
	case errors.Is(err, campaigndomain.ErrInvalidName),
		errors.Is(err, campaigndomain.ErrInvalidStatus),
		errors.Is(err, campaigndomain.ErrInvalidTone),
		errors.Is(err, campaigndomain.ErrInvalidLimit),
		errors.Is(err, campaigndomain.ErrInvalidTransition):
		return true
	default:
		return false
	}
}

func isProspectValidationError(err error) bool {
	switch {
	case errors.Is(err, prospectdomain.ErrInvalidURL),
		errors.Is(err, prospectdomain.ErrInvalidName),
		errors.Is(err, prospectdomain.ErrInvalidStatus),
		errors.Is(err, prospectdomain.ErrInvalidCampaign),
		errors.Is(err, prospectdomain.ErrInvalidAssignee):
		return true
	default:
		return false
	}
}

func isMessageValidationError(err error) bool {
	switch {
	case errors.Is(err, messagedomain.ErrInvalidContent),
		errors.Is(err, messagedomain.ErrAlreadySent):
		return true
	default:
		return false
	}
}

func isAuthValidationError(err error) bool {
	return errors.Is(err, authdomain.ErrInvalidRole)
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, signupdomain.ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "message_already_sent":
		return "message already sent"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog feeds the request logger's error_type/error_code
// fields without rendering anything.
func classifyErrorForLog(err error) (string, string) {
	status, _ := mapError(err)
	switch {
	case status == http.StatusBadRequest:
		return "validation", validationErrorCode(err)
	case status == http.StatusUnauthorized:
		return "auth", "unauthorized"
	case status == http.StatusForbidden:
		return "auth", "forbidden"
	case status == http.StatusNotFound:
		return "not_found", "not_found"
	case status == http.StatusConflict:
		return "conflict", "conflict"
	case status == http.StatusTooManyRequests:
		return "rate_limit", "daily_contact_limit"
	case status == http.StatusBadGateway:
		return "upstream", "provider_error"
	default:
		return "internal", "internal_error"
	}
}
