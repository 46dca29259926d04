package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestParseOr(t *testing.T) {
	fallback := point{X: 1, Y: 2}

	tests := []struct {
		name string
		raw  string
		want point
	}{
		{"valid json", `{"x":3,"y":4}`, point{X: 3, Y: 4}},
		{"empty string", "", fallback},
		{"malformed json", `{"x":3,`, fallback},
		{"wrong shape", `"not an object"`, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOr(tt.raw, fallback))
		})
	}
}

func TestParseOrNil(t *testing.T) {
	got := ParseOrNil[point](`{"x":3,"y":4}`)
	require.NotNil(t, got)
	assert.Equal(t, point{X: 3, Y: 4}, *got)

	assert.Nil(t, ParseOrNil[point](""))
	assert.Nil(t, ParseOrNil[point](`{"x":`))
	assert.Nil(t, ParseOrNil[[]string](`{"not":"a list"}`))
}

func TestParseOrSlice(t *testing.T) {
	assert.Equal(t, []string{"music", "arts"}, ParseOr(`["music","arts"]`, []string(nil)))
	assert.Nil(t, ParseOr(`not json`, []string(nil)))
}
