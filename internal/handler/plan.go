package handler

import (
	"net/http"

	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/metrics"
	"github.com/osse101/pisle-planner/internal/planner"
	"github.com/osse101/pisle-planner/internal/scale"
)

// PlanHandler serves the stateless planning endpoints
type PlanHandler struct {
	engine *planner.Engine
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(engine *planner.Engine) *PlanHandler {
	return &PlanHandler{engine: engine}
}

// BasisRequest carries a full set of habitat rows as typed by the player
type BasisRequest struct {
	Basis map[habitat.Kind]habitat.Input `json:"basis" validate:"required,min=1"`
}

// UpgradePlanRequest is the request body for an upgrade plan
type UpgradePlanRequest struct {
	Budget string                         `json:"budget" validate:"required,shortnum"`
	Basis  map[habitat.Kind]habitat.Input `json:"basis" validate:"required,min=1"`
}

// UpgradePlanResponse is an upgrade plan plus display-ready totals
type UpgradePlanResponse struct {
	Plan      *planner.UpgradePlan `json:"plan"`
	Levels    map[habitat.Kind]int `json:"levels"`
	Spent     string               `json:"spent"`
	Remaining string               `json:"remaining"`
}

// MetricsView is one ranked habitat
type MetricsView struct {
	habitat.Metrics
	Name string `json:"name"`
}

// RankingResponse lists habitats by gold per second per heart, lowest first
type RankingResponse struct {
	Ranking []MetricsView `json:"ranking"`
	Best    *habitat.Kind `json:"best,omitempty"`
}

// PenguinPriceResponse is the estimated value of one more penguin
type PenguinPriceResponse struct {
	Price     float64 `json:"price"`
	Formatted string  `json:"formatted"`
}

// HabitatInfo describes one habitat of the game
type HabitatInfo struct {
	ID   habitat.Kind `json:"id"`
	Name string       `json:"name"`
	Rate float64      `json:"rate"`
}

// HandleUpgrade plans how to spend a gold budget
func (h *PlanHandler) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	var req UpgradePlanRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Upgrade plan"); err != nil {
		return
	}

	basis, err := habitat.ParseInputs(req.Basis)
	if err != nil {
		respondServiceError(w, r, "plan_upgrade", err)
		return
	}
	budget, err := scale.ParseNumber(req.Budget)
	if err != nil {
		respondServiceError(w, r, "plan_upgrade", err)
		return
	}

	plan, err := h.engine.SpendGold(budget, basis)
	if err != nil {
		respondServiceError(w, r, "plan_upgrade", err)
		return
	}

	metrics.PlansComputed.WithLabelValues(metrics.PlanKindUpgrade).Inc()
	metrics.UpgradeSteps.Add(float64(len(plan.Steps)))
	respondJSON(w, http.StatusOK, newUpgradePlanResponse(plan))
}

// HandleEvolve ranks habitats for spending hearts
func (h *PlanHandler) HandleEvolve(w http.ResponseWriter, r *http.Request) {
	var req BasisRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Evolve plan"); err != nil {
		return
	}

	basis, err := habitat.ParseInputs(req.Basis)
	if err != nil {
		respondServiceError(w, r, "plan_evolve", err)
		return
	}

	metrics.PlansComputed.WithLabelValues(metrics.PlanKindEvolve).Inc()
	respondJSON(w, http.StatusOK, newRankingResponse(h.engine, h.engine.SpendHearts(basis)))
}

// HandlePenguin estimates what the next penguin is worth
func (h *PlanHandler) HandlePenguin(w http.ResponseWriter, r *http.Request) {
	var req BasisRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Penguin price"); err != nil {
		return
	}

	basis, err := habitat.ParseInputs(req.Basis)
	if err != nil {
		respondServiceError(w, r, "plan_penguin", err)
		return
	}

	price, err := h.engine.PenguinPrice(basis)
	if err != nil {
		respondServiceError(w, r, "plan_penguin", err)
		return
	}

	metrics.PlansComputed.WithLabelValues(metrics.PlanKindPenguin).Inc()
	respondJSON(w, http.StatusOK, newPenguinPriceResponse(price))
}

// HandleHabitats lists every habitat with the rates in effect
func (h *PlanHandler) HandleHabitats(w http.ResponseWriter, r *http.Request) {
	table := h.engine.Tunables().Table
	out := make([]HabitatInfo, 0, len(habitat.All))
	for _, k := range habitat.All {
		out = append(out, HabitatInfo{ID: k, Name: table[k].Name, Rate: table[k].Rate})
	}
	respondJSON(w, http.StatusOK, out)
}

func newUpgradePlanResponse(plan *planner.UpgradePlan) UpgradePlanResponse {
	return UpgradePlanResponse{
		Plan:      plan,
		Levels:    plan.Levels(),
		Spent:     scale.Format(plan.Spent),
		Remaining: scale.Format(plan.Remaining),
	}
}

func newRankingResponse(engine *planner.Engine, ranking []habitat.Metrics) RankingResponse {
	table := engine.Tunables().Table
	resp := RankingResponse{Ranking: make([]MetricsView, 0, len(ranking))}
	for _, m := range ranking {
		resp.Ranking = append(resp.Ranking, MetricsView{Metrics: m, Name: table[m.Habitat].Name})
	}
	if best, ok := planner.Best(ranking); ok {
		resp.Best = &best.Habitat
	}
	return resp
}

func newPenguinPriceResponse(price float64) PenguinPriceResponse {
	return PenguinPriceResponse{Price: price, Formatted: scale.Format(price)}
}
