package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/complement"
	"github.com/insightout11/cracked-ice/internal/roster"
)

// WriteComplements writes a complement ranking.
func WriteComplements(w io.Writer, seed string, results []complement.Result, opts Options) error {
	var rows, csvRows [][]string
	for i, r := range results {
		rank := strconv.Itoa(i + 1)
		rows = append(rows, []string{
			rank, r.TeamCode, r.TeamName,
			strconv.Itoa(r.Conflicts), strconv.Itoa(r.NonOverlap), opts.percent(r.OffNightShare),
		})
		csvRows = append(csvRows, []string{
			rank, r.TeamCode, r.TeamName,
			strconv.Itoa(r.Conflicts), strconv.Itoa(r.NonOverlap), opts.float(r.OffNightShare),
			strings.Join(r.ComplementDates, ";"),
		})
	}
	payload := struct {
		Seed    string              `json:"seed"`
		Results []complement.Result `json:"results"`
	}{seed, results}

	err := write(w, opts, payload,
		[]string{"Rank", "Team", "Name", "Conflicts", "Non-Overlap", "Off-Night"}, rows,
		[]string{"rank", "team", "name", "conflicts", "non_overlap", "off_night_share", "complement_dates"}, csvRows)
	if err != nil {
		return fmt.Errorf("error writing complements: %w", err)
	}
	return nil
}

// WriteAddedStarts writes a single-candidate answer.
func WriteAddedStarts(w io.Writer, r *roster.Result, opts Options) error {
	switch opts.Format {
	case JSONOut:
		return writeJSON(w, r)
	case CSVOut:
		return writeCSV(w,
			[]string{"team", "added_starts", "candidate_games", "dates"},
			[][]string{{r.TeamCode, strconv.Itoa(r.AddedStarts), strconv.Itoa(r.CandidateGamesInWindow), strings.Join(r.Dates, ";")}})
	}
	if _, err := fmt.Fprintf(w, "%s adds %d starts (%d games in window)\n", r.TeamCode, r.AddedStarts, r.CandidateGamesInWindow); err != nil {
		return err
	}
	for _, d := range r.Dates {
		if _, err := fmt.Fprintf(w, "  %s\n", d); err != nil {
			return err
		}
	}
	return nil
}

// WriteAddedStartsBulk writes every candidate's added starts.
func WriteAddedStartsBulk(w io.Writer, rosterCodes []string, rows []roster.Row, opts Options) error {
	var table [][]string
	for i, r := range rows {
		table = append(table, []string{
			strconv.Itoa(i + 1), r.TeamCode, r.TeamName,
			strconv.Itoa(r.AddedStarts), strconv.Itoa(r.CandidateGamesInWindow),
		})
	}
	payload := struct {
		Roster []string     `json:"roster"`
		Rows   []roster.Row `json:"rows"`
	}{rosterCodes, rows}

	header := []string{"Rank", "Team", "Name", "Added Starts", "Games"}
	err := write(w, opts, payload,
		header, table,
		[]string{"rank", "team", "name", "added_starts", "candidate_games"}, table)
	if err != nil {
		return fmt.Errorf("error writing added starts: %w", err)
	}
	return nil
}

// WriteBestMatches writes ranked combinations.
func WriteBestMatches(w io.Writer, k int, entries []combos.Entry, opts Options) error {
	var rows, csvRows [][]string
	for i, e := range entries {
		rank := strconv.Itoa(i + 1)
		rows = append(rows, []string{
			rank, e.Key(), strconv.Itoa(e.UsableStarts), opts.percent(e.OffNightPct), strconv.Itoa(e.UniqueDays),
		})
		csvRows = append(csvRows, []string{
			rank, e.Key(), strconv.Itoa(e.UsableStarts), opts.float(e.OffNightPct), strconv.Itoa(e.UniqueDays),
		})
	}
	payload := struct {
		K       int            `json:"k"`
		Entries []combos.Entry `json:"entries"`
	}{k, entries}

	err := write(w, opts, payload,
		[]string{"Rank", "Teams", "Usable Starts", "Off-Night", "Unique Days"}, rows,
		[]string{"rank", "teams", "usable_starts", "off_night_pct", "unique_days"}, csvRows)
	if err != nil {
		return fmt.Errorf("error writing best matches: %w", err)
	}
	return nil
}
