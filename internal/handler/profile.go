package handler

import (
	"net/http"

	"github.com/osse101/pisle-planner/internal/calculator"
	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/habitat"
)

// ProfileHandler serves the stateful per-profile endpoints
type ProfileHandler struct {
	service calculator.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service calculator.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// HabitatRequest names one habitat
type HabitatRequest struct {
	Habitat string `json:"habitat" validate:"required,habitat"`
}

// InputRequest updates a setup row. Empty fields leave the row untouched;
// values are checked when the rows are saved.
type InputRequest struct {
	Habitat    string `json:"habitat" validate:"required,habitat"`
	Level      string `json:"level"`
	Gold       string `json:"gold"`
	Cost       string `json:"cost"`
	Hearts     string `json:"hearts"`
	Multiplier string `json:"multiplier"`
}

// BudgetRequest is the request body for upgrade suggestions
type BudgetRequest struct {
	Budget string `json:"budget" validate:"required"`
}

// EvolveFigures are read off the game after evolving a habitat
type EvolveFigures struct {
	Habitat    string `json:"habitat" validate:"required,habitat"`
	Hearts     string `json:"hearts" validate:"required,shortnum"`
	Multiplier string `json:"multiplier" validate:"required,percent"`
}

// ResearchFigures are the Fishing Spot gold and cost shown after research
type ResearchFigures struct {
	Gold string `json:"gold" validate:"required,shortnum"`
	Cost string `json:"cost" validate:"required,shortnum"`
}

// CommitRequest confirms the pending suggestion. Evolve commits need the
// evolve figures; research commits fall back to the default factors.
type CommitRequest struct {
	Evolve   *EvolveFigures   `json:"evolve,omitempty"`
	Research *ResearchFigures `json:"research,omitempty"`
}

// StateResponse is a profile's state plus values derived from it
type StateResponse struct {
	State      domain.State         `json:"state"`
	Configured bool                 `json:"configured"`
	Unlocked   []habitat.Kind       `json:"unlocked"`
	Upgrade    *UpgradePlanResponse `json:"upgrade,omitempty"`
}

func newStateResponse(st domain.State) StateResponse {
	resp := StateResponse{
		State:      st,
		Configured: st.Configured(),
		Unlocked:   calculator.UnlockedKinds(st),
	}
	if st.Uncommitted != nil && st.Uncommitted.Plan != nil {
		up := newUpgradePlanResponse(st.Uncommitted.Plan)
		resp.Upgrade = &up
	}
	return resp
}

// HandleGetState returns the stored state of a profile
func (h *ProfileHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(w, r)
	if !ok {
		return
	}

	st, err := h.service.Get(r.Context(), profile)
	if err != nil {
		respondServiceError(w, r, "get", err)
		return
	}
	respondJSON(w, http.StatusOK, newStateResponse(st))
}

// HandleUnlock adds an empty setup row
func (h *ProfileHandler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	var req HabitatRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Unlock habitat"); err != nil {
		return
	}
	k, err := habitat.ParseKind(req.Habitat)
	if err != nil {
		respondServiceError(w, r, calculator.OpUnlock, err)
		return
	}

	h.apply(w, r, calculator.OpUnlock, func(s domain.State) (domain.State, error) {
		return h.calc().Unlock(s, k)
	})
}

// HandleInput merges typed values into a setup row
func (h *ProfileHandler) HandleInput(w http.ResponseWriter, r *http.Request) {
	var req InputRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Habitat input"); err != nil {
		return
	}
	k, err := habitat.ParseKind(req.Habitat)
	if err != nil {
		respondServiceError(w, r, calculator.OpSetInput, err)
		return
	}
	in := habitat.Input{
		Level:      req.Level,
		Gold:       req.Gold,
		Cost:       req.Cost,
		Hearts:     req.Hearts,
		Multiplier: req.Multiplier,
	}

	h.apply(w, r, calculator.OpSetInput, func(s domain.State) (domain.State, error) {
		return h.calc().SetInput(s, k, in)
	})
}

// HandleSave validates the setup rows into the committed basis
func (h *ProfileHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, calculator.OpSave, h.calc().Save)
}

// HandleReset clears the setup rows and the basis
func (h *ProfileHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, calculator.OpReset, h.calc().Reset)
}

// HandleEdit moves the basis back into editable rows
func (h *ProfileHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, calculator.OpStartEdit, h.calc().StartEdit)
}

// HandleSuggestUpgrades plans a gold budget and parks the plan
func (h *ProfileHandler) HandleSuggestUpgrades(w http.ResponseWriter, r *http.Request) {
	var req BudgetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Suggest upgrades"); err != nil {
		return
	}

	h.apply(w, r, calculator.OpSuggestUpgrades, func(s domain.State) (domain.State, error) {
		return h.calc().SuggestUpgrades(s, req.Budget)
	})
}

// HandleSuggestEvolve parks an evolve suggestion
func (h *ProfileHandler) HandleSuggestEvolve(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, calculator.OpSuggestEvolve, h.calc().SuggestEvolve)
}

// HandleSuggestResearch parks a research suggestion
func (h *ProfileHandler) HandleSuggestResearch(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, calculator.OpSuggestResearch, h.calc().SuggestResearch)
}

// HandleCancel drops the pending suggestion
func (h *ProfileHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, calculator.OpCancel, h.calc().Cancel)
}

// HandleCommit confirms the pending suggestion
func (h *ProfileHandler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	var req CommitRequest
	if err := DecodeOptionalRequest(r, w, &req, "Commit change"); err != nil {
		return
	}

	var in calculator.CommitInput
	if req.Evolve != nil {
		u, err := calculator.ParseEvolveUpdate(req.Evolve.Habitat, req.Evolve.Hearts, req.Evolve.Multiplier)
		if err != nil {
			respondServiceError(w, r, calculator.OpCommit, err)
			return
		}
		in.Evolve = &u
	}
	if req.Research != nil {
		u, err := calculator.ParseResearchUpdate(req.Research.Gold, req.Research.Cost)
		if err != nil {
			respondServiceError(w, r, calculator.OpCommit, err)
			return
		}
		in.Research = &u
	}

	h.apply(w, r, calculator.OpCommit, func(s domain.State) (domain.State, error) {
		return h.calc().Commit(s, in)
	})
}

// HandleAddPenguin records one more penguin
func (h *ProfileHandler) HandleAddPenguin(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, calculator.OpAddPenguin, h.calc().AddPenguin)
}

// HandleRanking ranks the profile's habitats for spending hearts
func (h *ProfileHandler) HandleRanking(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}

	ranking, err := h.calc().Ranking(st)
	if err != nil {
		respondServiceError(w, r, "ranking", err)
		return
	}
	respondJSON(w, http.StatusOK, newRankingResponse(h.calc().Engine(), ranking))
}

// HandlePenguinPrice estimates the profile's next penguin
func (h *ProfileHandler) HandlePenguinPrice(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}

	price, err := h.calc().PenguinPrice(st)
	if err != nil {
		respondServiceError(w, r, "penguin_price", err)
		return
	}
	respondJSON(w, http.StatusOK, newPenguinPriceResponse(price))
}

func (h *ProfileHandler) calc() *calculator.Calculator {
	return h.service.Calculator()
}

func (h *ProfileHandler) load(w http.ResponseWriter, r *http.Request) (domain.State, bool) {
	profile, ok := profileFromRequest(w, r)
	if !ok {
		return domain.State{}, false
	}

	st, err := h.service.Get(r.Context(), profile)
	if err != nil {
		respondServiceError(w, r, "get", err)
		return domain.State{}, false
	}
	return st, true
}

// apply runs t against the stored state and responds with the result
func (h *ProfileHandler) apply(w http.ResponseWriter, r *http.Request, op string, t calculator.Transition) {
	profile, ok := profileFromRequest(w, r)
	if !ok {
		return
	}

	st, err := h.service.Apply(r.Context(), profile, op, t)
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}
	respondJSON(w, http.StatusOK, newStateResponse(st))
}
