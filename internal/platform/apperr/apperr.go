package apperr

import (
	"errors"
	"net/http"
)

// Codes returned in the "error" field. Clients branch on these, so they are
// part of the API.
const (
	CodeInvalidInput  = "invalid_input"
	CodeInternal      = "internal_error"
	CodeRateLimited   = "rate_limited"
	CodeDBUnavailable = "db_unavailable"
	CodeForbidden     = "forbidden"
	CodeMissingToken  = "missing_token"
	CodeInvalidToken  = "invalid_token"
	CodeTokenError    = "token_error"
	CodeInactiveUser  = "inactive_user"
	CodeUserNotFound  = "user_not_found"
	CodeInvalidRole   = "invalid_role"
	CodeEmailTaken    = "email_taken"

	CodeInvalidCredentials = "invalid_credentials"

	CodeInvalidVotes      = "invalid_votes"
	CodePolicyNotFound    = "policy_not_found"
	CodeInvalidPolicy     = "invalid_policy"
	CodeOptionNotFound    = "option_not_found"
	CodeInvalidOption     = "invalid_option"
	CodeStreamUnsupported = "stream_unsupported"
	CodeRealtimeDisabled  = "realtime_disabled"

	CodeAnnouncementNotFound = "announcement_not_found"
	CodeInvalidAnnouncement  = "invalid_announcement"
	CodeMemberNotFound       = "member_not_found"
	CodeInvalidMember        = "invalid_member"
	CodeComplaintNotFound    = "complaint_not_found"
	CodeInvalidComplaint     = "invalid_complaint"
	CodeInvalidTrackID       = "invalid_track_id"
)

type AppError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	status  int
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *AppError) StatusCode() int {
	if e == nil || e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

func BadRequest(code, msg string, err error) *AppError {
	return newAppError(code, msg, err, http.StatusBadRequest)
}

func NotFound(code, msg string, err error) *AppError {
	return newAppError(code, msg, err, http.StatusNotFound)
}

func Conflict(code, msg string, err error) *AppError {
	return newAppError(code, msg, err, http.StatusConflict)
}

func Unauthorized(code, msg string, err error) *AppError {
	return newAppError(code, msg, err, http.StatusUnauthorized)
}

func Forbidden(code, msg string, err error) *AppError {
	return newAppError(code, msg, err, http.StatusForbidden)
}

func TooManyRequests(code, msg string, err error) *AppError {
	return newAppError(code, msg, err, http.StatusTooManyRequests)
}

func Unavailable(code, msg string, err error) *AppError {
	return newAppError(code, msg, err, http.StatusServiceUnavailable)
}

func Internal(code, msg string, err error) *AppError {
	return newAppError(code, msg, err, http.StatusInternalServerError)
}

func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(CodeInternal, http.StatusText(http.StatusInternalServerError), err)
}

func newAppError(code, msg string, err error, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Err:     err,
		status:  status,
	}
}
