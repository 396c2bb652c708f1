package setting

import (
	"testing"

	"github.com/dixieflatline76/Reel/config"
	"github.com/stretchr/testify/assert"
)

type mockStringer struct {
	val string
}

func (m mockStringer) String() string {
	return m.val
}

func TestStringOptions(t *testing.T) {
	tests := []struct {
		name     string
		input    []mockStringer
		expected []string
	}{
		{"Empty slice", []mockStringer{}, []string{}},
		{"Single item", []mockStringer{{val: "Option 1"}}, []string{"Option 1"}},
		{"Multiple items", []mockStringer{{val: "A"}, {val: "B"}, {val: "C"}}, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StringOptions(tt.input))
		})
	}

	assert.Equal(t, []string{"Fill Screen", "Fit to Screen", "Stretch"}, StringOptions(config.GetPlaybackModes()))
}

func TestChanges(t *testing.T) {
	var ran []string
	record := func(s string) func() { return func() { ran = append(ran, s) } }

	c := NewChanges()
	c.Set("battery_limit_enabled", record("limit"))
	c.Set("battery_threshold", record("threshold=25"))
	c.Set("tint_enabled", record("tint"))
	c.Set("battery_threshold", record("threshold=30"))
	c.Remove("tint_enabled")
	c.Remove("unknown")
	assert.Equal(t, 2, c.Len())

	c.Apply()
	assert.Equal(t, []string{"limit", "threshold=30"}, ran)
	assert.Equal(t, 0, c.Len())

	c.Apply()
	assert.Len(t, ran, 2, "applied edits do not run again")
}
