package api

import (
	"errors"
	"net/http"

	"genz-ignite/internal/domain/announcement"
	"genz-ignite/internal/domain/complaint"
	"genz-ignite/internal/domain/member"
	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/domain/poll"
	"genz-ignite/internal/domain/user"
	"genz-ignite/internal/domain/vote"
	"genz-ignite/internal/ledger"
	"genz-ignite/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		slogLogger.Error("request failed", "err", err)
	}
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal(apperr.CodeInternal, "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized(apperr.CodeInvalidCredentials, "invalid credentials", err)
	case errors.Is(err, user.ErrInactiveUser):
		return apperr.Unauthorized(apperr.CodeInactiveUser, "user is inactive", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.Conflict(apperr.CodeEmailTaken, "email already taken", err)
	case errors.Is(err, user.ErrInvalidRole):
		return apperr.BadRequest(apperr.CodeInvalidRole, "role must be admin or staff", err)
	case errors.Is(err, user.ErrMissingFields):
		return apperr.BadRequest(apperr.CodeInvalidInput, err.Error(), err)
	case errors.Is(err, user.ErrNotFound):
		return apperr.NotFound(apperr.CodeUserNotFound, "user not found", err)

	case errors.Is(err, policy.ErrNotFound):
		return apperr.NotFound(apperr.CodePolicyNotFound, "policy not found", err)
	case errors.Is(err, policy.ErrTitleRequired),
		errors.Is(err, policy.ErrInvalidStatus),
		errors.Is(err, policy.ErrInvalidProgress):
		return apperr.BadRequest(apperr.CodeInvalidPolicy, err.Error(), err)

	case errors.Is(err, poll.ErrNotFound):
		return apperr.NotFound(apperr.CodeOptionNotFound, "poll option not found", err)
	case errors.Is(err, poll.ErrOptionNameRequired):
		return apperr.BadRequest(apperr.CodeInvalidOption, err.Error(), err)

	case errors.Is(err, vote.ErrNegativeVotes), errors.Is(err, ledger.ErrUnknownCategory):
		return apperr.BadRequest(apperr.CodeInvalidVotes, err.Error(), err)

	case errors.Is(err, announcement.ErrNotFound):
		return apperr.NotFound(apperr.CodeAnnouncementNotFound, "announcement not found", err)
	case errors.Is(err, announcement.ErrTitleRequired),
		errors.Is(err, announcement.ErrContentRequired),
		errors.Is(err, announcement.ErrInvalidCategory):
		return apperr.BadRequest(apperr.CodeInvalidAnnouncement, err.Error(), err)

	case errors.Is(err, member.ErrNotFound):
		return apperr.NotFound(apperr.CodeMemberNotFound, "member not found", err)
	case errors.Is(err, member.ErrNameRequired),
		errors.Is(err, member.ErrRoleRequired),
		errors.Is(err, member.ErrInvalidHandle):
		return apperr.BadRequest(apperr.CodeInvalidMember, err.Error(), err)

	case errors.Is(err, complaint.ErrNotFound):
		return apperr.NotFound(apperr.CodeComplaintNotFound, "complaint not found", err)
	case errors.Is(err, complaint.ErrInvalidTrackID):
		return apperr.BadRequest(apperr.CodeInvalidTrackID, err.Error(), err)
	case errors.Is(err, complaint.ErrTopicRequired),
		errors.Is(err, complaint.ErrMessageRequired),
		errors.Is(err, complaint.ErrMessageTooLong),
		errors.Is(err, complaint.ErrInvalidStatus),
		errors.Is(err, complaint.ErrReplyNeedsResolve):
		return apperr.BadRequest(apperr.CodeInvalidComplaint, err.Error(), err)

	default:
		return apperr.Internal(apperr.CodeInternal, http.StatusText(http.StatusInternalServerError), err)
	}
}
