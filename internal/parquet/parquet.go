// Package parquet exports combination rankings and tier reports to Parquet
// files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

// File names written by Export.
const (
	BestMatchesFile = "best_matches.parquet"
	TiersFile       = "tiers.parquet"
)

// BestMatchRow is one ranked combination.
type BestMatchRow struct {
	Season string `parquet:"season,snappy"`

	// Size is the number of teams in the combination
	Size int32 `parquet:"k,snappy"`

	// Rank is 1-based within its size
	Rank int32 `parquet:"rank,snappy"`

	// Teams joins the codes with "-"
	Teams string `parquet:"teams,snappy"`

	UsableStarts int32   `parquet:"usable_starts,snappy"`
	OffNightPct  float64 `parquet:"off_night_pct,snappy"`
	UniqueDays   int32   `parquet:"unique_days,snappy"`

	// SlotsPerDay is the lineup capacity the starts were counted against
	SlotsPerDay int32 `parquet:"slots_per_day,snappy"`
}

// TierRow is one team's tier record.
type TierRow struct {
	TeamCode     string `parquet:"team_code,snappy"`
	TeamName     string `parquet:"team_name,snappy"`
	Tier         string `parquet:"tier,snappy"`
	PlayoffStart string `parquet:"playoff_start,snappy"`

	RegularGames     int32   `parquet:"regular_games,snappy"`
	RegularOffNights int32   `parquet:"regular_off_nights,snappy"`
	RegularScore     float64 `parquet:"regular_score,snappy"`
	RegularZScore    float64 `parquet:"regular_z_score,snappy"`

	PlayoffGames     int32   `parquet:"playoff_games,snappy"`
	PlayoffOffNights int32   `parquet:"playoff_off_nights,snappy"`
	PlayoffScore     float64 `parquet:"playoff_score,snappy"`
	PlayoffZScore    float64 `parquet:"playoff_z_score,snappy"`
}

// BestMatchRows flattens ranked combinations, smallest size first.
func BestMatchRows(season string, slots int, best map[int][]combos.Entry) []BestMatchRow {
	var rows []BestMatchRow
	for _, k := range combos.Sizes {
		for i, e := range best[k] {
			rows = append(rows, BestMatchRow{
				Season:       season,
				Size:         int32(k),
				Rank:         int32(i + 1),
				Teams:        e.Key(),
				UsableStarts: int32(e.UsableStarts),
				OffNightPct:  e.OffNightPct,
				UniqueDays:   int32(e.UniqueDays),
				SlotsPerDay:  int32(slots),
			})
		}
	}
	return rows
}

// TierRows flattens a tier report in report order.
func TierRows(report *tiers.Report) []TierRow {
	rows := make([]TierRow, 0, len(report.Teams))
	for _, t := range report.Teams {
		rows = append(rows, TierRow{
			TeamCode:         t.TeamCode,
			TeamName:         t.TeamName,
			Tier:             string(t.Tier),
			PlayoffStart:     report.PlayoffStart,
			RegularGames:     int32(t.Regular.Games),
			RegularOffNights: int32(t.Regular.OffNights),
			RegularScore:     t.Regular.Score,
			RegularZScore:    t.Regular.ZScore,
			PlayoffGames:     int32(t.Playoff.Games),
			PlayoffOffNights: int32(t.Playoff.OffNights),
			PlayoffScore:     t.Playoff.Score,
			PlayoffZScore:    t.Playoff.ZScore,
		})
	}
	return rows
}

// WriteBestMatches writes combination rows to a Parquet file.
func WriteBestMatches(rows []BestMatchRow, outputPath string) error {
	return writeRows(rows, outputPath)
}

// WriteTiers writes tier rows to a Parquet file.
func WriteTiers(rows []TierRow, outputPath string) error {
	return writeRows(rows, outputPath)
}

// Export writes the files into dir and returns their paths. The tiers file
// is skipped when tierRows is nil.
func Export(dir string, best []BestMatchRow, tierRows []TierRow) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	bestPath := filepath.Join(dir, BestMatchesFile)
	if err := WriteBestMatches(best, bestPath); err != nil {
		return nil, err
	}
	paths := []string{bestPath}
	if tierRows == nil {
		return paths, nil
	}
	tiersPath := filepath.Join(dir, TiersFile)
	if err := WriteTiers(tierRows, tiersPath); err != nil {
		return nil, err
	}
	return append(paths, tiersPath), nil
}

func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the row struct tags
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}
