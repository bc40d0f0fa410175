// Package schedtest builds deterministic synthetic leagues for tests.
package schedtest

import (
	"math/rand"
	"time"

	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
)

// SeasonStart is the first date of every synthetic season (a Monday).
const SeasonStart = "2024-10-07"

// League returns a store with the full 32-team vocabulary playing for the
// given number of days. Each day a random number of games (1 to 14) pairs
// distinct teams, so every date has an even number of participants.
func League(seed int64, days int) *schedule.Store {
	rng := rand.New(rand.NewSource(seed))
	codes := schedule.VocabularyCodes()
	start, _ := time.Parse(setmath.DateLayout, SeasonStart)

	teams := make(map[string][]string, len(codes))
	for _, c := range codes {
		teams[c] = nil
	}
	for day := range days {
		date := start.AddDate(0, 0, day).Format(setmath.DateLayout)
		games := 1 + rng.Intn(14)
		order := rng.Perm(len(codes))
		for i := 0; i < games*2; i++ {
			c := codes[order[i]]
			teams[c] = append(teams[c], date)
		}
	}
	return schedule.New("synthetic", "", teams)
}

// Roster picks n distinct codes from store at random.
func Roster(rng *rand.Rand, store *schedule.Store, n int) []string {
	codes := store.Codes()
	rng.Shuffle(len(codes), func(i, j int) { codes[i], codes[j] = codes[j], codes[i] })
	return codes[:n]
}
