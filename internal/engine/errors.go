package engine

import (
	"errors"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/complement"
	"github.com/insightout11/cracked-ice/internal/roster"
	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

// Stable error codes shared by every outer surface.
const (
	CodeDataNotReady        = "data_not_ready"
	CodeUnknownTeam         = "unknown_team"
	CodeUnknownRosterTeam   = "unknown_roster_team"
	CodeEmptySeedInWindow   = "empty_seed_in_window"
	CodeInvalidWindow       = "invalid_window"
	CodeInvalidRoster       = "invalid_roster"
	CodeInvalidSlots        = "invalid_slots"
	CodeInvalidSize         = "invalid_size"
	CodeInvalidPlayoffStart = "invalid_playoff_start"
	CodeInvalidRequest      = "invalid_request"
	CodeInternal            = "internal"
)

// ErrInvalidRequest marks a malformed parameter that no other code covers.
var ErrInvalidRequest = errors.New("invalid request")

// ErrorCode maps an engine error to its stable code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, schedule.ErrDataNotReady):
		return CodeDataNotReady
	case errors.Is(err, schedule.ErrUnknownRosterTeam):
		return CodeUnknownRosterTeam
	case errors.Is(err, schedule.ErrUnknownTeam):
		return CodeUnknownTeam
	case errors.Is(err, complement.ErrEmptySeedWindow):
		return CodeEmptySeedInWindow
	case errors.Is(err, setmath.ErrInvalidWindow):
		return CodeInvalidWindow
	case errors.Is(err, roster.ErrInvalidRoster):
		return CodeInvalidRoster
	case errors.Is(err, roster.ErrInvalidSlots):
		return CodeInvalidSlots
	case errors.Is(err, combos.ErrInvalidSize):
		return CodeInvalidSize
	case errors.Is(err, tiers.ErrInvalidPlayoffStart):
		return CodeInvalidPlayoffStart
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeInternal
	}
}

// IsCallerError reports whether err is something the caller can fix by
// changing the request.
func IsCallerError(err error) bool {
	switch ErrorCode(err) {
	case CodeDataNotReady, CodeInternal:
		return false
	default:
		return true
	}
}
