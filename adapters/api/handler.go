package api

import (
	"encoding/json"
	"log"
	"net/http"

	"pharmabrand/app"
	"pharmabrand/domain/strategy"
	"pharmabrand/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler serves the planning operations as a JSON API, for callers
// that want the wizard's data without the wizard.
type Handler struct {
	service *app.PlanService
}

// NewHandler creates the API handler.
func NewHandler(service *app.PlanService) *Handler {
	return &Handler{service: service}
}

// Routes builds the chi router.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Get("/api/axes", h.handleAxes)
	r.Get("/api/imperatives", h.handleImperatives)
	r.Get("/api/differentiators", h.handleDifferentiators)
	r.Get("/api/coverage", h.handleCoverage)
	r.Post("/api/plan", h.handlePlan)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleAxes(w http.ResponseWriter, r *http.Request) {
	axes, err := h.service.Axes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"roles":      axes.Roles,
		"lifecycles": axes.Lifecycles,
		"journeys":   axes.Journeys,
	})
}

func (h *Handler) handleImperatives(w http.ResponseWriter, r *http.Request) {
	sel := strategy.NewSelection()
	sel.Role = r.URL.Query().Get("role")
	sel.Lifecycle = r.URL.Query().Get("lifecycle")
	sel.Journey = r.URL.Query().Get("journey")

	imperatives, err := h.service.Imperatives(r.Context(), sel)
	if err != nil {
		writeError(w, err)
		return
	}
	if imperatives == nil {
		imperatives = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"imperatives": imperatives})
}

func (h *Handler) handleDifferentiators(w http.ResponseWriter, r *http.Request) {
	diffs, err := h.service.Differentiators(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"differentiators": diffs})
}

func (h *Handler) handleCoverage(w http.ResponseWriter, r *http.Request) {
	cov, err := h.service.Coverage(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cov)
}

// planRequest mirrors a completed wizard selection.
type planRequest struct {
	Role            string   `json:"role"`
	Imperatives     []string `json:"imperatives"`
	Differentiators []string `json:"differentiators"`
}

// planItemResponse is one item of the generation pass. Notice is the
// inline error text for items that failed; failed items still appear in
// selection order.
type planItemResponse struct {
	Imperative  string `json:"imperative"`
	Tactic      string `json:"tactic,omitempty"`
	Description string `json:"description,omitempty"`
	Cost        string `json:"cost,omitempty"`
	Timeframe   string `json:"timeframe,omitempty"`
	Notice      string `json:"notice,omitempty"`
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Imperatives) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one imperative is required"})
		return
	}

	sel := strategy.NewSelection()
	sel.Role = req.Role
	sel.Imperatives = req.Imperatives
	sel.Differentiators = req.Differentiators
	if len(sel.Imperatives) > strategy.MaxSelections {
		sel.Imperatives = sel.Imperatives[:strategy.MaxSelections]
	}
	if len(sel.Differentiators) > strategy.MaxSelections {
		sel.Differentiators = sel.Differentiators[:strategy.MaxSelections]
	}

	items, err := h.service.GeneratePlan(r.Context(), sel)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]planItemResponse, 0, len(items))
	for _, item := range items {
		resp := planItemResponse{
			Imperative: item.Imperative,
			Tactic:     item.Tactic,
			Notice:     item.Notice,
		}
		if item.Tactic != "" {
			narrative := item.Narrative.WithDefaults()
			resp.Description = narrative.Description
			resp.Cost = narrative.Cost
			resp.Timeframe = narrative.Timeframe
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, map[string][]planItemResponse{"items": out})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsSchemaMismatch(err):
		status = http.StatusUnprocessableEntity
	case errors.IsLoadError(err):
		status = http.StatusInternalServerError
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
