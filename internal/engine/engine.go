// Package engine wires the schedule store and the precomputed combinations to
// the five schedule operations and gates them on a successful load.
package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/complement"
	"github.com/insightout11/cracked-ice/internal/roster"
	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
	"github.com/insightout11/cracked-ice/internal/tiers"
	"github.com/insightout11/cracked-ice/internal/validator"
)

// Options configures an Engine.
type Options struct {
	DataPath    string
	SlotsPerDay int // default lineup slots; also used for the precomputed combinations
	Logger      *logrus.Logger
}

// Engine answers schedule queries. Its store and combination cache are
// written once during construction and only read afterwards.
type Engine struct {
	store   *schedule.Store
	best    *combos.Cache
	slots   int
	loadErr error
	log     *logrus.Entry
}

// Team pairs a code with its display name.
type Team struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Games int    `json:"games"`
}

// New loads the schedule artifact and precomputes the best combinations.
// A load failure does not fail construction: the engine comes up unready and
// every operation reports ErrDataNotReady.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := &Engine{slots: opts.SlotsPerDay, log: log.WithField("component", "engine")}
	if e.slots < 1 {
		e.slots = roster.DefaultSlotsPerDay
	}

	store, err := schedule.Load(opts.DataPath)
	if err != nil {
		e.loadErr = err
		e.log.WithError(err).WithField("path", opts.DataPath).Error("schedule data not warmed")
		return e
	}
	if err := e.warm(store); err != nil {
		e.loadErr = err
		e.log.WithError(err).Error("schedule data not warmed")
	}
	return e
}

// NewFromStore builds a ready engine around an already loaded store.
func NewFromStore(store *schedule.Store, slots int, log *logrus.Logger) (*Engine, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if slots < 1 {
		slots = roster.DefaultSlotsPerDay
	}
	e := &Engine{slots: slots, log: log.WithField("component", "engine")}
	if err := e.warm(store); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) warm(store *schedule.Store) error {
	for _, v := range validator.Validate(store) {
		entry := e.log.WithField("check", v.Check)
		if v.Type == validator.Error {
			entry.Error(v.Message)
		} else {
			entry.Warn(v.Message)
		}
	}

	start := time.Now()
	best, err := combos.Precompute(store, e.slots)
	if err != nil {
		return fmt.Errorf("precomputing best combinations: %w", err)
	}
	e.store = store
	e.best = best

	meta := store.Meta()
	e.log.WithFields(logrus.Fields{
		"season":   meta.Season,
		"teams":    meta.TeamCount,
		"slots":    e.slots,
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("schedule data warmed")
	return nil
}

// Ready reports whether the schedule loaded.
func (e *Engine) Ready() bool {
	return e.store != nil
}

// Err returns the load failure, or nil when ready.
func (e *Engine) Err() error {
	if e.Ready() {
		return nil
	}
	return &schedule.NotReadyError{Cause: e.loadErr}
}

// SlotsPerDay is the default number of daily lineup slots.
func (e *Engine) SlotsPerDay() int {
	return e.slots
}

// Store returns the loaded store.
func (e *Engine) Store() (*schedule.Store, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	return e.store, nil
}

// Meta describes the loaded season.
func (e *Engine) Meta() (schedule.Meta, error) {
	if err := e.Err(); err != nil {
		return schedule.Meta{}, err
	}
	return e.store.Meta(), nil
}

// Teams lists every loaded team.
func (e *Engine) Teams() ([]Team, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	var teams []Team
	for _, c := range e.store.Codes() {
		teams = append(teams, Team{Code: c, Name: e.store.DisplayName(c), Games: e.store.Dates(c).Len()})
	}
	return teams, nil
}

// RankComplements ranks every other team against seed inside w.
func (e *Engine) RankComplements(seed string, w setmath.Window) ([]complement.Result, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	return complement.Rank(e.store, seed, w)
}

// AddedStarts counts the candidate's usable starts alongside roster. A zero
// slots value uses the engine default.
func (e *Engine) AddedStarts(rosterCodes []string, candidate string, w setmath.Window, slots int) (*roster.Result, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	return roster.AddedStarts(e.store, rosterCodes, candidate, w, e.slotsOrDefault(slots))
}

// AddedStartsBulk scores every team outside the roster.
func (e *Engine) AddedStartsBulk(rosterCodes []string, w setmath.Window, slots int) ([]roster.Row, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	return roster.AddedStartsBulk(e.store, rosterCodes, w, e.slotsOrDefault(slots))
}

// BestMatches returns the top combinations of size k. The full season with
// default slots is served straight from the cache; anything else re-scores
// the cached combinations.
func (e *Engine) BestMatches(k int, w setmath.Window, slots int) ([]combos.Entry, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	slots = e.slotsOrDefault(slots)
	if w.Unbounded() && slots == e.best.Slots() {
		return e.best.Top(k)
	}
	return e.best.Rescore(e.store, k, w, slots)
}

// TeamTiers classifies every team around the playoff boundary.
func (e *Engine) TeamTiers(playoffStart string, weights tiers.Weights) (*tiers.Report, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	return tiers.Score(e.store, playoffStart, weights)
}

func (e *Engine) slotsOrDefault(slots int) int {
	if slots == 0 {
		return e.slots
	}
	return slots
}
