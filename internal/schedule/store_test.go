package schedule

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/insightout11/cracked-ice/internal/setmath"
)

const testArtifact = `{
  "season": "20242025",
  "lastRefreshed": "2024-10-01T08:00:00Z",
  "teams": {
    "BOS": ["2024-10-08", "2024-10-10", "2024-10-12"],
    "tor": ["2024-10-09", "2024-10-10", "2024-10-10"],
    "XYZ": ["2024-10-11"]
  }
}`

func TestLoadFromBytes(t *testing.T) {
	s, err := LoadFromBytes([]byte(testArtifact))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("meta", func(t *testing.T) {
		m := s.Meta()
		if m.Season != "20242025" {
			t.Errorf("season = %q, want %q", m.Season, "20242025")
		}
		if m.TeamCount != 3 {
			t.Errorf("team count = %d, want 3", m.TeamCount)
		}
		if m.LastRefreshed != "2024-10-01T08:00:00Z" {
			t.Errorf("last refreshed = %q", m.LastRefreshed)
		}
	})

	t.Run("codes are normalized and sorted", func(t *testing.T) {
		codes := s.Codes()
		want := []string{"BOS", "TOR", "XYZ"}
		if len(codes) != len(want) {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
		for i := range want {
			if codes[i] != want[i] {
				t.Errorf("codes[%d] = %q, want %q", i, codes[i], want[i])
			}
		}
	})

	t.Run("duplicate dates collapse", func(t *testing.T) {
		if n := s.Dates("TOR").Len(); n != 2 {
			t.Errorf("TOR dates = %d, want 2", n)
		}
	})

	t.Run("lookups ignore case", func(t *testing.T) {
		if !s.Has(" bos ") {
			t.Error("expected bos to resolve")
		}
		if s.Dates("bos").Len() != 3 {
			t.Errorf("bos dates = %d, want 3", s.Dates("bos").Len())
		}
	})

	t.Run("display names", func(t *testing.T) {
		if got := s.DisplayName("BOS"); got != "Boston Bruins" {
			t.Errorf("BOS = %q, want Boston Bruins", got)
		}
		if got := s.DisplayName("XYZ"); got != "XYZ" {
			t.Errorf("XYZ = %q, want fallback to code", got)
		}
		if len(s.DisplayNames()) != 3 {
			t.Errorf("display names = %d, want 3", len(s.DisplayNames()))
		}
	})

	t.Run("filtered", func(t *testing.T) {
		got := s.Filtered("BOS", setmath.Window{Start: "2024-10-09", End: "2024-10-12"}).Sorted()
		if len(got) != 2 || got[0] != "2024-10-10" || got[1] != "2024-10-12" {
			t.Errorf("filtered = %v", got)
		}
		if s.Filtered("NOPE", setmath.Window{}).Len() != 0 {
			t.Error("unknown team should filter to empty")
		}
	})

	t.Run("league calendar", func(t *testing.T) {
		if n := len(s.LeagueDates()); n != 5 {
			t.Errorf("league dates = %d, want 5", n)
		}
		if s.TeamsPlaying()["2024-10-10"] != 2 {
			t.Errorf("teams playing 2024-10-10 = %d, want 2", s.TeamsPlaying()["2024-10-10"])
		}
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "schedule.json"))
		if !errors.Is(err, ErrDataMissing) {
			t.Errorf("err = %v, want ErrDataMissing", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadFromBytes([]byte(`{"teams": [`))
		if err == nil || errors.Is(err, ErrDataMissing) {
			t.Errorf("err = %v, want parse error", err)
		}
	})

	t.Run("no teams", func(t *testing.T) {
		_, err := LoadFromBytes([]byte(`{"season": "20242025", "teams": {}}`))
		if !errors.Is(err, ErrDataMissing) {
			t.Errorf("err = %v, want ErrDataMissing", err)
		}
	})

	t.Run("load from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schedule.json")
		if err := os.WriteFile(path, []byte(testArtifact), 0644); err != nil {
			t.Fatal(err)
		}
		s, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Meta().TeamCount != 3 {
			t.Errorf("team count = %d, want 3", s.Meta().TeamCount)
		}
	})
}

func TestRequire(t *testing.T) {
	s := New("20242025", "", map[string][]string{"BOS": {"2024-10-08"}, "TOR": {"2024-10-09"}})

	code, err := s.Require("bos")
	if err != nil || code != "BOS" {
		t.Errorf("Require(bos) = %q, %v", code, err)
	}

	_, err = s.Require("ZZZ")
	var ute *UnknownTeamError
	if !errors.As(err, &ute) || ute.Code != "ZZZ" || ute.Roster {
		t.Errorf("err = %v, want UnknownTeamError for ZZZ", err)
	}
	if !errors.Is(err, ErrUnknownTeam) {
		t.Errorf("err = %v, want ErrUnknownTeam", err)
	}

	_, err = s.RequireRoster([]string{"BOS", "QQQ", "RRR"})
	if !errors.Is(err, ErrUnknownRosterTeam) {
		t.Errorf("err = %v, want ErrUnknownRosterTeam", err)
	}
	if !errors.As(err, &ute) || ute.Code != "QQQ" {
		t.Errorf("first invalid roster code = %v, want QQQ", err)
	}
}

func TestNotReadyError(t *testing.T) {
	err := &NotReadyError{Cause: ErrDataMissing}
	if !errors.Is(err, ErrDataNotReady) {
		t.Error("expected ErrDataNotReady")
	}
	if !errors.Is(err, ErrDataMissing) {
		t.Error("expected cause to unwrap")
	}
}

func TestVocabulary(t *testing.T) {
	if len(Vocabulary) != LeagueSize {
		t.Errorf("vocabulary = %d teams, want %d", len(Vocabulary), LeagueSize)
	}
	codes := VocabularyCodes()
	for i, c := range codes {
		if len(c) != 3 {
			t.Errorf("code %q is not 3 letters", c)
		}
		if i > 0 && codes[i-1] >= c {
			t.Errorf("codes not sorted at %d", i)
		}
	}
}
