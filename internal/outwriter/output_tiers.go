package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/insightout11/cracked-ice/internal/tiers"
)

// WriteTiers writes a tier report. The table is followed by a one-line
// summary of the tier counts.
func WriteTiers(w io.Writer, report *tiers.Report, opts Options) error {
	var rows, csvRows [][]string
	for _, t := range report.Teams {
		base := []string{
			t.TeamCode, t.TeamName, "",
			strconv.Itoa(t.Regular.Games), strconv.Itoa(t.Regular.OffNights), opts.float(t.Regular.Score),
			strconv.Itoa(t.Playoff.Games), strconv.Itoa(t.Playoff.OffNights), opts.float(t.Playoff.Score),
		}
		row := append([]string(nil), base...)
		row[2] = paintTier(t.Tier, opts.Color)
		rows = append(rows, row)

		base[2] = string(t.Tier)
		csvRows = append(csvRows, base)
	}

	err := write(w, opts, report,
		[]string{"Team", "Name", "Tier", "Reg Games", "Reg Off", "Reg Score", "PO Games", "PO Off", "PO Score"}, rows,
		[]string{"team", "name", "tier", "regular_games", "regular_off_nights", "regular_score", "playoff_games", "playoff_off_nights", "playoff_score"}, csvRows)
	if err != nil {
		return fmt.Errorf("error writing tiers: %w", err)
	}
	if opts.Format != TextOut && opts.Format != "" {
		return nil
	}

	_, err = fmt.Fprintf(w, "Playoffs from %s: %d %s, %d %s, %d %s, %d %s\n", report.PlayoffStart,
		report.TierCounts[tiers.Cyan], paintTier(tiers.Cyan, opts.Color),
		report.TierCounts[tiers.Blue], paintTier(tiers.Blue, opts.Color),
		report.TierCounts[tiers.Green], paintTier(tiers.Green, opts.Color),
		report.TierCounts[tiers.Red], paintTier(tiers.Red, opts.Color))
	return err
}
