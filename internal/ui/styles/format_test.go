package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "34ABC123", 10, "34ABC123"},
		{"exact", "34ABC123", 8, "34ABC123"},
		{"cut", "Ali Veli Yılmaz", 8, "Ali V..."},
		{"tiny", "34ABC123", 2, ".."},
		{"zero", "34ABC123", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TruncateString(tt.input, tt.maxWidth))
		})
	}
}
