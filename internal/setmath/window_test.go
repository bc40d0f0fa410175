package setmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterByRange(t *testing.T) {
	s := NewDateSet("2024-01-01", "2024-01-05", "2024-01-10", "2024-01-15")

	t.Run("unbounded returns input", func(t *testing.T) {
		out := FilterByRange(s, Window{})
		assert.Equal(t, s, out)
		out["2099-01-01"] = struct{}{}
		assert.True(t, s.Has("2099-01-01"), "unbounded filter should share the input set")
		delete(s, "2099-01-01")
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		out := FilterByRange(s, Window{Start: "2024-01-05", End: "2024-01-10"})
		assert.Equal(t, []string{"2024-01-05", "2024-01-10"}, out.Sorted())
	})

	t.Run("open start", func(t *testing.T) {
		out := FilterByRange(s, Window{End: "2024-01-05"})
		assert.Equal(t, []string{"2024-01-01", "2024-01-05"}, out.Sorted())
	})

	t.Run("open end", func(t *testing.T) {
		out := FilterByRange(s, Window{Start: "2024-01-06"})
		assert.Equal(t, []string{"2024-01-10", "2024-01-15"}, out.Sorted())
	})

	t.Run("inverted window is empty", func(t *testing.T) {
		out := FilterByRange(s, Window{Start: "2024-01-10", End: "2024-01-01"})
		assert.Equal(t, 0, out.Len())
	})

	t.Run("idempotent and monotonic", func(t *testing.T) {
		wide := Window{Start: "2024-01-01", End: "2024-01-12"}
		narrow := Window{Start: "2024-01-04", End: "2024-01-11"}
		once := FilterByRange(s, wide)
		assert.Equal(t, once.Sorted(), FilterByRange(once, wide).Sorted())
		for d := range FilterByRange(s, narrow) {
			assert.True(t, once.Has(d), d)
		}
	})
}

func TestWindowValidate(t *testing.T) {
	assert.NoError(t, Window{}.Validate())
	assert.NoError(t, Window{Start: "2024-01-01"}.Validate())
	assert.NoError(t, Window{Start: "2024-01-01", End: "2024-01-01"}.Validate())
	assert.ErrorIs(t, Window{Start: "2024-02-01", End: "2024-01-01"}.Validate(), ErrInvalidWindow)
	assert.ErrorIs(t, Window{End: "01/02/2024"}.Validate(), ErrInvalidWindow)
}

func TestWindowString(t *testing.T) {
	assert.Equal(t, "2024-01-01..…", Window{Start: "2024-01-01"}.String())
	assert.Equal(t, "…..…", Window{}.String())
}
