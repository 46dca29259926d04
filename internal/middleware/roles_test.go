package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	tests := []struct {
		name string
		have []string
		want []string
		ok   bool
	}{
		{"single match", []string{"organizer"}, []string{"organizer"}, true},
		{"match among several", []string{"user", "organizer"}, []string{"admin", "organizer"}, true},
		{"no overlap", []string{"user"}, []string{"admin"}, false},
		{"empty have", nil, []string{"organizer"}, false},
		{"empty want", []string{"organizer"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, hasAny(tt.have, tt.want))
		})
	}
}
