package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/insightout11/cracked-ice/internal/engine"
	"github.com/insightout11/cracked-ice/internal/setmath"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	eng  *engine.Engine
	opts Options
	log  *logrus.Entry
}

func (h *toolHandler) handleRankComplements(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	win, err := window(request)
	if err != nil {
		return h.failure("rank_complements", err), nil
	}
	seed := request.GetString("seed", "")
	results, err := h.eng.RankComplements(seed, win)
	if err != nil {
		return h.failure("rank_complements", err), nil
	}
	return success(map[string]any{"seed": seed, "window": win, "results": results})
}

func (h *toolHandler) handleAddedStarts(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	win, err := window(request)
	if err != nil {
		return h.failure("added_starts", err), nil
	}
	result, err := h.eng.AddedStarts(rosterCodes(request), request.GetString("candidate", ""), win, request.GetInt("slots", 0))
	if err != nil {
		return h.failure("added_starts", err), nil
	}
	return success(result)
}

func (h *toolHandler) handleAddedStartsBulk(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	win, err := window(request)
	if err != nil {
		return h.failure("added_starts_bulk", err), nil
	}
	codes := rosterCodes(request)
	rows, err := h.eng.AddedStartsBulk(codes, win, request.GetInt("slots", 0))
	if err != nil {
		return h.failure("added_starts_bulk", err), nil
	}
	return success(map[string]any{"roster": codes, "window": win, "rows": rows})
}

func (h *toolHandler) handleBestMatches(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	win, err := window(request)
	if err != nil {
		return h.failure("best_matches", err), nil
	}
	k := request.GetInt("k", 0)
	entries, err := h.eng.BestMatches(k, win, request.GetInt("slots", 0))
	if err != nil {
		return h.failure("best_matches", err), nil
	}
	return success(map[string]any{"k": k, "window": win, "entries": entries})
}

func (h *toolHandler) handleTeamTiers(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week := request.GetInt("playoff_week", 0)
	if week < 0 {
		return h.failure("team_tiers", fmt.Errorf("%w: playoff_week must be positive, got %d", tiers.ErrInvalidPlayoffStart, week)), nil
	}
	playoffStart, err := h.opts.Boundary.Resolve(request.GetString("playoff_start", ""), week)
	if err != nil {
		return h.failure("team_tiers", err), nil
	}

	settings := make(map[string]float64)
	args := request.GetArguments()
	for _, key := range []string{tiers.OffNightWeightKey, tiers.GameVolumeWeightKey} {
		if _, ok := args[key]; !ok {
			continue
		}
		v := request.GetFloat(key, -1)
		if v < 0 {
			return h.failure("team_tiers", fmt.Errorf("%w: %s must be a non-negative number", engine.ErrInvalidRequest, key)), nil
		}
		settings[key] = v
	}

	report, err := h.eng.TeamTiers(playoffStart, h.opts.Weights.With(settings))
	if err != nil {
		return h.failure("team_tiers", err), nil
	}
	return success(report)
}

// failure reports err to the client as a tool error prefixed with its stable code.
func (h *toolHandler) failure(tool string, err error) *mcp.CallToolResult {
	code := engine.ErrorCode(err)
	if !engine.IsCallerError(err) {
		h.log.WithError(err).WithFields(logrus.Fields{"tool": tool, "code": code}).Error("tool call failed")
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", code, err))
}

func success(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func window(request mcp.CallToolRequest) (setmath.Window, error) {
	w := setmath.Window{Start: request.GetString("start", ""), End: request.GetString("end", "")}
	if err := w.Validate(); err != nil {
		return setmath.Window{}, err
	}
	return w, nil
}

func rosterCodes(request mcp.CallToolRequest) []string {
	var codes []string
	for _, c := range strings.Split(request.GetString("roster", ""), ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}
