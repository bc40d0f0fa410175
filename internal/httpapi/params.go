package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/engine"
	"github.com/insightout11/cracked-ice/internal/roster"
	"github.com/insightout11/cracked-ice/internal/setmath"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

func parseWindow(r *http.Request) (setmath.Window, error) {
	q := r.URL.Query()
	w := setmath.Window{Start: q.Get("start"), End: q.Get("end")}
	if err := w.Validate(); err != nil {
		return setmath.Window{}, err
	}
	return w, nil
}

// parseRoster splits a comma list, dropping empty entries.
func parseRoster(r *http.Request) []string {
	var codes []string
	for _, c := range strings.Split(r.URL.Query().Get("roster"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// parseSlots returns 0 when absent so the engine default applies.
func parseSlots(r *http.Request) (int, error) {
	s := r.URL.Query().Get("slots")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: got %q", roster.ErrInvalidSlots, s)
	}
	return n, nil
}

func parseSize(s string) (int, error) {
	k, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: got %q", combos.ErrInvalidSize, s)
	}
	return k, nil
}

func (h *Handler) parsePlayoffStart(r *http.Request) (string, error) {
	q := r.URL.Query()
	week := 0
	if s := q.Get("playoffWeek"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return "", fmt.Errorf("%w: playoffWeek must be a positive number, got %q", tiers.ErrInvalidPlayoffStart, s)
		}
		week = n
	}
	return h.opts.Boundary.Resolve(q.Get("playoffStart"), week)
}

func (h *Handler) parseWeights(r *http.Request) (tiers.Weights, error) {
	q := r.URL.Query()
	settings := make(map[string]float64)
	for _, key := range []string{tiers.OffNightWeightKey, tiers.GameVolumeWeightKey} {
		s := q.Get(key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return tiers.Weights{}, fmt.Errorf("%w: %s must be a non-negative number, got %q", engine.ErrInvalidRequest, key, s)
		}
		settings[key] = v
	}
	return h.opts.Weights.With(settings), nil
}
