package handler

import (
	"net/http"

	"github.com/osse101/pisle-planner/internal/calculator"
	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/exportstate"
	"github.com/osse101/pisle-planner/internal/logger"
	"github.com/osse101/pisle-planner/internal/metrics"
)

// ExportResponse carries a profile's state as a shareable token
type ExportResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// ImportRequest carries either a bare token or a URL with a state parameter
type ImportRequest struct {
	State string `json:"state" validate:"required_without=URL,excluded_with=URL"`
	URL   string `json:"url" validate:"required_without=State"`
}

// ImportResponse reports whether the imported state replaced the stored one
type ImportResponse struct {
	Message string        `json:"message"`
	Applied bool          `json:"applied"`
	State   StateResponse `json:"state"`
}

// HandleExport encodes the stored state into a URL token
func (h *ProfileHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}

	token, err := exportstate.Encode(st)
	if err != nil {
		respondServiceError(w, r, "export", err)
		return
	}
	respondJSON(w, http.StatusOK, ExportResponse{Token: token, URL: exportstate.URLForToken(token)})
}

// HandleImport decodes a token or URL and reconciles it with the stored state
func (h *ProfileHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Import state"); err != nil {
		return
	}
	profile, ok := profileFromRequest(w, r)
	if !ok {
		return
	}

	imported, err := decodeImport(req)
	if err != nil {
		metrics.StateDecodeFailures.WithLabelValues(calculator.SourceImport).Inc()
		logger.FromContext(r.Context()).Warn(LogMsgImportDecodeFailed, "profile", profile, "error", err)
		respondServiceError(w, r, calculator.OpImport, err)
		return
	}
	if imported == nil {
		respondError(w, http.StatusBadRequest, ErrMsgMissingImportSource)
		return
	}

	st, applied, err := h.service.Import(r.Context(), profile, *imported)
	if err != nil {
		respondServiceError(w, r, calculator.OpImport, err)
		return
	}

	msg := MsgStateImported
	if !applied {
		msg = MsgStateKept
	}
	respondJSON(w, http.StatusOK, ImportResponse{
		Message: msg,
		Applied: applied,
		State:   newStateResponse(st),
	})
}

// decodeImport returns nil, nil when a URL carries no state parameter
func decodeImport(req ImportRequest) (*domain.State, error) {
	if req.State != "" {
		st, err := exportstate.Decode(req.State)
		if err != nil {
			return nil, err
		}
		return &st, nil
	}
	return exportstate.ImportURL(req.URL)
}
