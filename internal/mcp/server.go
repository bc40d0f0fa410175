// Package mcp exposes the schedule operations as Model Context Protocol tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/insightout11/cracked-ice/internal/engine"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

// Options carries the tier defaults and logger shared by every tool call.
type Options struct {
	Version  string
	Boundary tiers.Boundary
	Weights  tiers.Weights
	Logger   *logrus.Logger
}

// NewServer registers every tool without starting the transport.
// This is exposed for unit testing.
func NewServer(eng *engine.Engine, opts Options) *server.MCPServer {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Weights == (tiers.Weights{}) {
		opts.Weights = tiers.DefaultWeights()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	s := server.NewMCPServer(
		"Cracked Ice Schedule Server",
		opts.Version,
		server.WithLogging(),
	)

	h := &toolHandler{
		eng:  eng,
		opts: opts,
		log:  opts.Logger.WithField("component", "mcp"),
	}

	windowArgs := []mcp.ToolOption{
		mcp.WithString("start", mcp.Description("First date of the window (YYYY-MM-DD). Defaults to the start of the season.")),
		mcp.WithString("end", mcp.Description("Last date of the window (YYYY-MM-DD). Defaults to the end of the season.")),
	}

	// --- 1. Tool: rank_complements ---
	s.AddTool(mcp.NewTool("rank_complements", append([]mcp.ToolOption{
		mcp.WithDescription("Rank every team by how well its game dates fill the gaps in a seed team's schedule."),
		mcp.WithString("seed", mcp.Description("Team code to complement, e.g. 'BOS'."), mcp.Required()),
	}, windowArgs...)...), h.handleRankComplements)

	// --- 2. Tool: added_starts ---
	s.AddTool(mcp.NewTool("added_starts", append([]mcp.ToolOption{
		mcp.WithDescription("Count the starts a candidate team adds to a roster given limited daily lineup slots."),
		mcp.WithString("roster", mcp.Description("Comma-separated team codes already on the roster (1 to 5)."), mcp.Required()),
		mcp.WithString("candidate", mcp.Description("Team code being considered."), mcp.Required()),
		mcp.WithNumber("slots", mcp.Description("Lineup slots per day. Defaults to the configured value.")),
	}, windowArgs...)...), h.handleAddedStarts)

	// --- 3. Tool: added_starts_bulk ---
	s.AddTool(mcp.NewTool("added_starts_bulk", append([]mcp.ToolOption{
		mcp.WithDescription("Score every team outside a roster by the starts it would add."),
		mcp.WithString("roster", mcp.Description("Comma-separated team codes already on the roster (1 to 5)."), mcp.Required()),
		mcp.WithNumber("slots", mcp.Description("Lineup slots per day. Defaults to the configured value.")),
	}, windowArgs...)...), h.handleAddedStartsBulk)

	// --- 4. Tool: best_matches ---
	s.AddTool(mcp.NewTool("best_matches", append([]mcp.ToolOption{
		mcp.WithDescription("List the team combinations of size k with the most usable starts."),
		mcp.WithNumber("k", mcp.Description("Combination size (2, 3 or 4)."), mcp.Required()),
		mcp.WithNumber("slots", mcp.Description("Lineup slots per day. Defaults to the configured value.")),
	}, windowArgs...)...), h.handleBestMatches)

	// --- 5. Tool: team_tiers ---
	s.AddTool(mcp.NewTool("team_tiers",
		mcp.WithDescription("Classify every team into a color tier by regular-season and playoff schedule quality."),
		mcp.WithString("playoff_start", mcp.Description("First date of the fantasy playoffs (YYYY-MM-DD).")),
		mcp.WithNumber("playoff_week", mcp.Description("Fantasy week the playoffs start in, counted from the season start.")),
		mcp.WithNumber(tiers.OffNightWeightKey, mcp.Description("Weight of the off-night share in the score.")),
		mcp.WithNumber(tiers.GameVolumeWeightKey, mcp.Description("Weight of the game count in the score.")),
	), h.handleTeamTiers)

	return s
}

// Serve runs the tool server over stdin and stdout until the client disconnects.
func Serve(eng *engine.Engine, opts Options) error {
	return server.ServeStdio(NewServer(eng, opts))
}
