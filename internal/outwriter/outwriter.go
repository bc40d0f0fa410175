// Package outwriter renders engine answers for the command line as tables,
// JSON or CSV.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/insightout11/cracked-ice/internal/tiers"
)

// Format selects how results are written.
type Format string

const (
	TextOut Format = "text"
	JSONOut Format = "json"
	CSVOut  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case TextOut, JSONOut, CSVOut:
		return f, nil
	case "":
		return TextOut, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or csv)", s)
	}
}

// Options controls rendering.
type Options struct {
	Format    Format
	Precision int  // decimal places for shares and scores
	Color     bool // color tier names in tables
}

// DefaultOptions renders plain tables with three decimals.
func DefaultOptions() Options {
	return Options{Format: TextOut, Precision: 3}
}

var tierColors = map[tiers.Tier]color.Attribute{
	tiers.Cyan:  color.FgCyan,
	tiers.Blue:  color.FgBlue,
	tiers.Green: color.FgGreen,
	tiers.Red:   color.FgRed,
}

// paintTier colors a tier name. Color is forced on when enabled.
func paintTier(t tiers.Tier, enabled bool) string {
	attr, ok := tierColors[t]
	if !enabled || !ok {
		return string(t)
	}
	c := color.New(attr, color.Bold)
	c.EnableColor()
	return c.Sprint(string(t))
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSV writes a header and rows, flushing before it returns.
func writeCSV(w io.Writer, header []string, rows [][]string) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := csvWriter.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// writeTable renders a right-aligned table.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// write dispatches on the format. The JSON payload is passed separately so
// JSON keeps its full structure while text and CSV share flat rows.
func write(w io.Writer, opts Options, payload any, header []string, rows [][]string, csvHeader []string, csvRows [][]string) error {
	switch opts.Format {
	case JSONOut:
		return writeJSON(w, payload)
	case CSVOut:
		return writeCSV(w, csvHeader, csvRows)
	default:
		return writeTable(w, header, rows)
	}
}

func (o Options) float(v float64) string {
	return strconv.FormatFloat(v, 'f', o.Precision, 64)
}

func (o Options) percent(v float64) string {
	p := o.Precision - 2
	if p < 0 {
		p = 0
	}
	return strconv.FormatFloat(v*100, 'f', p, 64) + "%"
}
