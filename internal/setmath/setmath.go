// Package setmath holds the date-set primitives every schedule score is built from.
package setmath

import (
	"math"
	"sort"
	"time"
)

// DateLayout is the fixed-width ISO layout used for every game date.
const DateLayout = "2006-01-02"

// DateSet is an unordered set of ISO game dates.
type DateSet map[string]struct{}

// NewDateSet builds a set from dates, dropping duplicates.
func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s DateSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

func (s DateSet) Len() int {
	return len(s)
}

// Sorted returns the dates in ascending order.
func (s DateSet) Sorted() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// CountIntersect returns |a ∩ b|.
func CountIntersect(a, b DateSet) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for d := range a {
		if b.Has(d) {
			n++
		}
	}
	return n
}

// CountDifference returns |a \ b|.
func CountDifference(a, b DateSet) int {
	n := 0
	for d := range a {
		if !b.Has(d) {
			n++
		}
	}
	return n
}

// Difference returns the dates of a missing from b, sorted.
func Difference(a, b DateSet) []string {
	var dates []string
	for d := range a {
		if !b.Has(d) {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

// OffNightShareOfDifference returns the fraction of other's dates not shared
// with seed that land on an off-night weekday. An empty difference yields 0.
func OffNightShareOfDifference(seed, other DateSet) float64 {
	total, off := 0, 0
	for d := range other {
		if seed.Has(d) {
			continue
		}
		total++
		if IsOffNightWeekday(d) {
			off++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(off) / float64(total)
}

// IsOffNightWeekday reports whether date falls on a Monday, Wednesday, Friday
// or Sunday. The date is read at noon UTC so no zone can shift the day.
// Unparsable dates are never off-nights.
func IsOffNightWeekday(date string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	switch t.Add(12 * time.Hour).UTC().Weekday() {
	case time.Monday, time.Wednesday, time.Friday, time.Sunday:
		return true
	default:
		return false
	}
}

// Round rounds x half away from zero to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
