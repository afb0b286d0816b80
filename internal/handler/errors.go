package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/exportstate"
	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/logger"
	"github.com/osse101/pisle-planner/internal/planner"
	"github.com/osse101/pisle-planner/internal/scale"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidProfile        = "Profile names may only contain letters, digits, '-' and '_'"
	ErrMsgCorruptStateHTTP      = "State could not be decoded"
	ErrMsgMissingImportSource   = "Provide either state or url"
)

// User-facing messages for planner state errors
const (
	ErrMsgNotConfiguredHTTP     = "Habitats are not configured yet. Save your habitats first."
	ErrMsgAlreadyConfiguredHTTP = "Habitats are already configured. Start editing to change them."
	ErrMsgNoPendingChangeHTTP   = "There is no suggestion to confirm"
	ErrMsgChangeMismatchHTTP    = "The pending suggestion is of a different kind"
	ErrMsgHabitatLockedHTTP     = "That habitat has not been unlocked"
	ErrMsgNothingToSaveHTTP     = "Unlock at least one habitat before saving"
)

// Success messages
const (
	MsgStateImported = "State imported"
	MsgStateKept     = "Stored state is newer; import ignored"
)

// Log messages
const (
	LogMsgEncodeFailed       = "Failed to encode JSON response"
	LogMsgWriteFailed        = "Failed to write response buffer"
	LogMsgDecodeFailed       = "Failed to decode request"
	LogMsgRequestDecoded     = "Request decoded"
	LogMsgServiceError       = "Service error"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgImportDecodeFailed = "Failed to decode imported state"
)

// mapServiceError maps domain errors to an HTTP status and a user-facing message.
// Input problems keep their own text since it only echoes what the player sent.
func mapServiceError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError

	case errors.Is(err, domain.ErrInvalidProfile):
		return http.StatusBadRequest, ErrMsgInvalidProfile
	case errors.Is(err, domain.ErrNothingToSave):
		return http.StatusBadRequest, ErrMsgNothingToSaveHTTP
	case errors.Is(err, domain.ErrHabitatLocked):
		return http.StatusBadRequest, ErrMsgHabitatLockedHTTP

	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusConflict, ErrMsgNotConfiguredHTTP
	case errors.Is(err, domain.ErrAlreadyConfigured):
		return http.StatusConflict, ErrMsgAlreadyConfiguredHTTP
	case errors.Is(err, domain.ErrNoPendingChange):
		return http.StatusConflict, ErrMsgNoPendingChangeHTTP
	case errors.Is(err, domain.ErrChangeMismatch):
		return http.StatusConflict, ErrMsgChangeMismatchHTTP

	case errors.Is(err, habitat.ErrUnknownHabitat),
		errors.Is(err, habitat.ErrInvalidBasis),
		errors.Is(err, habitat.ErrInvalidInput),
		errors.Is(err, scale.ErrInvalidNotation),
		errors.Is(err, scale.ErrInvalidMultiplier),
		errors.Is(err, planner.ErrInvalidBudget),
		errors.Is(err, planner.ErrNoHabitats):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrCorruptState),
		errors.Is(err, exportstate.ErrEmptyToken),
		errors.Is(err, exportstate.ErrInvalidURL):
		return http.StatusUnprocessableEntity, ErrMsgCorruptStateHTTP
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError writes the response for a failed service call.
// Field errors become a 400 with a per-field map.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var fe habitat.FieldErrors
	if errors.As(err, &fe) {
		respondFieldErrors(w, fe)
		return
	}

	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", op, "error", err)
	} else {
		log.Debug(LogMsgServiceError, "operation", op, "error", err, "status", status)
	}
	respondError(w, status, msg)
}
