package excel

import (
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/schedule"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

func testData(t *testing.T) Input {
	t.Helper()
	store := schedule.New("20242025", "", map[string][]string{
		// 2024-10-07 is a Monday
		"BOS": {"2024-10-07", "2024-10-08", "2024-10-10"},
		"TOR": {"2024-10-07", "2024-10-09"},
		"MTL": {"2024-10-08", "2024-10-09", "2024-10-10"},
	})
	report, err := tiers.Score(store, "2024-10-09", tiers.DefaultWeights())
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	cache, err := combos.Precompute(store, 2)
	if err != nil {
		t.Fatalf("Precompute() error: %v", err)
	}
	best := make(map[int][]combos.Entry)
	for _, k := range []int{2, 3} {
		entries, err := cache.Top(k)
		if err != nil {
			t.Fatalf("Top(%d) error: %v", k, err)
		}
		best[k] = entries
	}
	return Input{Store: store, Tiers: report, Best: best}
}

func TestGenerateWorkbook(t *testing.T) {
	in := testData(t)
	f, err := Generate(in)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	t.Run("sheet order", func(t *testing.T) {
		want := []string{"Tiers", "Best Pairs", "Best Trios", "BOS", "MTL", "TOR"}
		got := f.GetSheetList()
		if len(got) != len(want) {
			t.Fatalf("sheets = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("tiers sheet", func(t *testing.T) {
		rows, _ := f.GetRows("Tiers")
		if len(rows) != 4 {
			t.Fatalf("Tiers rows = %d, want 4", len(rows))
		}
		if rows[0][0] != "Team" || rows[0][2] != "Tier" {
			t.Errorf("header = %v", rows[0])
		}
		val, _ := f.GetCellValue("Tiers", "K2")
		if val != "2024-10-09" {
			t.Errorf("playoff start = %q, want 2024-10-09", val)
		}
	})

	t.Run("best pairs sheet", func(t *testing.T) {
		rows, _ := f.GetRows("Best Pairs")
		if len(rows) != 4 {
			t.Fatalf("Best Pairs rows = %d, want 4 (header + 3 pairs)", len(rows))
		}
		if rows[1][0] != "1" {
			t.Errorf("first rank = %q, want 1", rows[1][0])
		}
		if rows[1][1] != in.Best[2][0].Key() {
			t.Errorf("first pair = %q, want %q", rows[1][1], in.Best[2][0].Key())
		}
	})

	t.Run("team sheet", func(t *testing.T) {
		rows, _ := f.GetRows("BOS")
		if len(rows) != 4 {
			t.Fatalf("BOS rows = %d, want 4", len(rows))
		}
		want := [][]string{
			{"2024-10-07", "Mon", "Yes", "1"},
			{"2024-10-08", "Tue", "No", "1"},
			{"2024-10-10", "Thu", "No", "1"},
		}
		for i, w := range want {
			row := rows[i+1]
			for j := range w {
				if row[j] != w[j] {
					t.Errorf("BOS row %d col %d = %q, want %q", i+2, j+1, row[j], w[j])
				}
			}
		}
	})

	t.Run("default Sheet1 removed", func(t *testing.T) {
		idx, _ := f.GetSheetIndex("Sheet1")
		if idx >= 0 {
			t.Error("Sheet1 should be removed")
		}
	})
}

func TestGenerateWithoutSummaries(t *testing.T) {
	in := testData(t)
	f, err := Generate(Input{Store: in.Store})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if n := len(f.GetSheetList()); n != 3 {
		t.Errorf("sheets = %d, want 3 team sheets", n)
	}
}

func TestWriteAndRead(t *testing.T) {
	f, err := Generate(testData(t))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	path := t.TempDir() + "/test.xlsx"
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}

	// Verify we can read it back
	f2, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer f2.Close()

	val, _ := f2.GetCellValue("Tiers", "A1")
	if val != "Team" {
		t.Errorf("re-read A1 = %q, want Team", val)
	}
	val, _ = f2.GetCellValue("Best Trios", "C2")
	if n, err := strconv.Atoi(val); err != nil || n <= 0 {
		t.Errorf("re-read usable starts = %q, want a positive count", val)
	}
}

func TestColLetter(t *testing.T) {
	tests := map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"}
	for col, want := range tests {
		if got := colLetter(col); got != want {
			t.Errorf("colLetter(%d) = %q, want %q", col, got, want)
		}
	}
}
