package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/logger"
)

// ProfileParam is the chi URL parameter naming the player profile
const ProfileParam = "profile"

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req UpgradeRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Suggest upgrades"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	return decodeAndValidate(r, w, req, actionName, false)
}

// DecodeOptionalRequest is DecodeAndValidateRequest for endpoints whose body may be omitted
func DecodeOptionalRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	return decodeAndValidate(r, w, req, actionName, true)
}

func decodeAndValidate(r *http.Request, w http.ResponseWriter, req interface{}, actionName string, optional bool) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondFieldErrors(w, FormatValidationError(err))
		return err
	}

	return nil
}

// profileFromRequest reads and validates the {profile} path parameter.
// If ok is false, the HTTP response has already been written.
func profileFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	profile := chi.URLParam(r, ProfileParam)
	if err := domain.ValidateProfile(profile); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidProfile)
		return "", false
	}
	return profile, true
}
