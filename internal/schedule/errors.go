package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrDataMissing means the schedule artifact is absent or empty.
	ErrDataMissing = errors.New("schedule data missing")

	// ErrDataNotReady is returned by every operation while the store has not
	// been loaded successfully.
	ErrDataNotReady = errors.New("schedule data not warmed")

	ErrUnknownTeam       = errors.New("unknown team")
	ErrUnknownRosterTeam = errors.New("unknown roster team")
)

// UnknownTeamError names a team code that is not in the store.
type UnknownTeamError struct {
	Code   string
	Roster bool // the code came from a roster rather than a seed or candidate
}

func (e *UnknownTeamError) Error() string {
	if e.Roster {
		return fmt.Sprintf("unknown roster team %q", e.Code)
	}
	return fmt.Sprintf("unknown team %q", e.Code)
}

func (e *UnknownTeamError) Unwrap() error {
	if e.Roster {
		return ErrUnknownRosterTeam
	}
	return ErrUnknownTeam
}

// NotReadyError wraps the load failure that left the store unavailable.
type NotReadyError struct {
	Cause error
}

func (e *NotReadyError) Error() string {
	if e.Cause == nil {
		return ErrDataNotReady.Error()
	}
	return fmt.Sprintf("%s: %v", ErrDataNotReady, e.Cause)
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrDataNotReady
}

func (e *NotReadyError) Unwrap() error {
	return e.Cause
}
