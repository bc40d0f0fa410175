package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/insightout11/cracked-ice/internal/engine"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Health reports that the process is up, loaded or not.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "crackedice",
	})
}

// Ready reports whether the schedule is loaded.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	meta, err := h.eng.Meta()
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"meta":   meta,
	})
}

// Teams lists every loaded team.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.eng.Teams()
	if err != nil {
		h.respondError(w, err)
		return
	}
	meta, _ := h.eng.Meta()
	respondJSON(w, http.StatusOK, map[string]any{
		"teams": teams,
		"count": len(teams),
		"meta":  meta,
	})
}

// Complements ranks every team against the seed in the path.
// Query params: start, end
func (h *Handler) Complements(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	seed := chi.URLParam(r, "team")
	results, err := h.eng.RankComplements(seed, win)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"seed":    seed,
		"window":  win,
		"results": results,
	})
}

// AddedStarts counts one candidate's usable starts.
// Query params: roster, candidate, slots, start, end
func (h *Handler) AddedStarts(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	slots, err := parseSlots(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	result, err := h.eng.AddedStarts(parseRoster(r), r.URL.Query().Get("candidate"), win, slots)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// AddedStartsBulk scores every team outside the roster.
// Query params: roster, slots, start, end
func (h *Handler) AddedStartsBulk(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	slots, err := parseSlots(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	rosterCodes := parseRoster(r)
	rows, err := h.eng.AddedStartsBulk(rosterCodes, win, slots)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"roster": rosterCodes,
		"window": win,
		"rows":   rows,
	})
}

// BestMatches returns the top combinations of size k.
// Query params: slots, start, end
func (h *Handler) BestMatches(w http.ResponseWriter, r *http.Request) {
	k, err := parseSize(chi.URLParam(r, "k"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	win, err := parseWindow(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	slots, err := parseSlots(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	entries, err := h.eng.BestMatches(k, win, slots)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"k":       k,
		"window":  win,
		"entries": entries,
	})
}

// Tiers classifies every team around the playoff boundary.
// Query params: playoffStart, playoffWeek, offNightWeight, gameVolumeWeight
func (h *Handler) Tiers(w http.ResponseWriter, r *http.Request) {
	playoffStart, err := h.parsePlayoffStart(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	weights, err := h.parseWeights(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	report, err := h.eng.TeamTiers(playoffStart, weights)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// statusFor maps an engine error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case engine.CodeDataNotReady:
		return http.StatusServiceUnavailable
	case engine.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	code := engine.ErrorCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		h.log.WithError(err).WithField("code", code).Error("request failed")
	}
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Message: err.Error(),
	})
}
