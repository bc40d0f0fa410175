package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/setmath"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

// BestSheetNames maps a combination size to its sheet.
var BestSheetNames = map[int]string{
	2: "Best Pairs",
	3: "Best Trios",
	4: "Best Quads",
}

// TierFills colors the tier column.
var TierFills = map[tiers.Tier]string{
	tiers.Cyan:  "#B4F0FA",
	tiers.Blue:  "#BDD7EE",
	tiers.Green: "#C6EFCE",
	tiers.Red:   "#FFC7CE",
}

// Input is everything the workbook reports on.
type Input struct {
	Store *schedule.Store
	Tiers *tiers.Report
	Best  map[int][]combos.Entry
}

// Generate creates an Excel workbook with the tier and best-combination
// summaries followed by one sheet per team.
func Generate(in Input) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if in.Tiers != nil {
		if err := writeTiersSheet(f, in.Tiers); err != nil {
			return nil, fmt.Errorf("writing tiers sheet: %w", err)
		}
	}

	for _, k := range combos.Sizes {
		entries, ok := in.Best[k]
		if !ok {
			continue
		}
		if err := writeBestSheet(f, BestSheetNames[k], entries); err != nil {
			return nil, fmt.Errorf("writing %s sheet: %w", BestSheetNames[k], err)
		}
	}

	if err := writeTeamSheets(f, in.Store); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

type styles struct {
	header int
	cell   int
	number int
}

func newStyles(f *excelize.File) styles {
	var s styles
	s.header, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	s.cell, _ = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	s.number, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return s
}

func writeHeader(f *excelize.File, sheet string, headers []string, st styles) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if st.header != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), st.header)
	}
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

// styleRow applies the text style to the first textCols columns and the
// centered number style to the rest.
func styleRow(f *excelize.File, sheet string, row, textCols, totalCols int, st styles) {
	if st.cell != 0 && textCols > 0 {
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(textCols, row), st.cell)
	}
	if st.number != 0 && totalCols > textCols {
		f.SetCellStyle(sheet, cellRef(textCols+1, row), cellRef(totalCols, row), st.number)
	}
}

func writeTiersSheet(f *excelize.File, report *tiers.Report) error {
	sheet := "Tiers"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	st := newStyles(f)

	headers := []string{"Team", "Name", "Tier",
		"Regular Games", "Regular Off-Nights", "Regular Score",
		"Playoff Games", "Playoff Off-Nights", "Playoff Score"}
	writeHeader(f, sheet, headers, st)

	fills := make(map[tiers.Tier]int)
	for tier, color := range TierFills {
		id, _ := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 16, Family: "Arial"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		fills[tier] = id
	}

	for i, team := range report.Teams {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), team.TeamCode)
		f.SetCellValue(sheet, cellRef(2, row), team.TeamName)
		f.SetCellValue(sheet, cellRef(3, row), string(team.Tier))
		f.SetCellValue(sheet, cellRef(4, row), team.Regular.Games)
		f.SetCellValue(sheet, cellRef(5, row), team.Regular.OffNights)
		f.SetCellValue(sheet, cellRef(6, row), setmath.Round(team.Regular.Score, 3))
		f.SetCellValue(sheet, cellRef(7, row), team.Playoff.Games)
		f.SetCellValue(sheet, cellRef(8, row), team.Playoff.OffNights)
		f.SetCellValue(sheet, cellRef(9, row), setmath.Round(team.Playoff.Score, 3))
		styleRow(f, sheet, row, 2, len(headers), st)
		if id := fills[team.Tier]; id != 0 {
			f.SetCellStyle(sheet, cellRef(3, row), cellRef(3, row), id)
		}
	}

	// Set column widths (sized for Arial 16)
	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "C", 12)
	f.SetColWidth(sheet, "D", "I", 22)

	// Playoff start goes to the right of the table
	note := len(headers) + 2
	f.SetCellValue(sheet, cellRef(note, 1), "Playoff Start")
	f.SetCellValue(sheet, cellRef(note, 2), report.PlayoffStart)
	f.SetColWidth(sheet, colLetter(note), colLetter(note), 18)
	return nil
}

func writeBestSheet(f *excelize.File, sheet string, entries []combos.Entry) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	st := newStyles(f)

	headers := []string{"Rank", "Teams", "Usable Starts", "Off-Night %", "Unique Days"}
	writeHeader(f, sheet, headers, st)

	pct, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		NumFmt:    10, // 0.00%
	})

	for i, e := range entries {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), i+1)
		f.SetCellValue(sheet, cellRef(2, row), e.Key())
		f.SetCellValue(sheet, cellRef(3, row), e.UsableStarts)
		f.SetCellValue(sheet, cellRef(4, row), e.OffNightPct)
		f.SetCellValue(sheet, cellRef(5, row), e.UniqueDays)
		styleRow(f, sheet, row, 0, len(headers), st)
		if st.cell != 0 {
			f.SetCellStyle(sheet, cellRef(2, row), cellRef(2, row), st.cell)
		}
		if pct != 0 {
			f.SetCellStyle(sheet, cellRef(4, row), cellRef(4, row), pct)
		}
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 26)
	f.SetColWidth(sheet, "C", "E", 18)
	return nil
}

func writeTeamSheets(f *excelize.File, store *schedule.Store) error {
	playing := store.TeamsPlaying()
	st := newStyles(f)

	// Off-night rows get a light green fill
	greenFill, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#C6EFCE"}},
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})

	headers := []string{"Date", "Day", "Off-Night", "League Games"}
	for _, team := range store.Codes() {
		sheet := team
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		writeHeader(f, sheet, headers, st)

		dates := store.Dates(team).Sorted()
		for i, d := range dates {
			row := i + 2
			day := ""
			if t, err := time.Parse(setmath.DateLayout, d); err == nil {
				day = t.Format("Mon")
			}
			offNight := "No"
			if setmath.IsOffNightWeekday(d) {
				offNight = "Yes"
			}
			f.SetCellValue(sheet, cellRef(1, row), d)
			f.SetCellValue(sheet, cellRef(2, row), day)
			f.SetCellValue(sheet, cellRef(3, row), offNight)
			f.SetCellValue(sheet, cellRef(4, row), playing[d]/2)
			styleRow(f, sheet, row, 2, len(headers), st)
		}

		if len(dates) > 0 && greenFill != 0 {
			lastRow := len(dates) + 1
			f.SetConditionalFormat(sheet, fmt.Sprintf("A2:D%d", lastRow), []excelize.ConditionalFormatOptions{
				{
					Type:     "formula",
					Criteria: `$C2="Yes"`,
					Format:   &greenFill,
				},
			})
		}

		// Set column widths (sized for Arial 16)
		widths := map[string]float64{"A": 18, "B": 8, "C": 14, "D": 18}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}
	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
