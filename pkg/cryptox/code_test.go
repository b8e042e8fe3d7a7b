package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]struct{}, 200)
	for range 200 {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		require.Len(t, code, InviteCodeLength)
		for _, c := range code {
			require.True(t, strings.ContainsRune(InviteAlphabet, c), "unexpected rune %q", c)
		}
		require.NotContains(t, seen, code)
		seen[code] = struct{}{}
	}
}

func TestGenerateCode_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		length   int
	}{
		{"zero length", InviteAlphabet, 0},
		{"negative length", InviteAlphabet, -3},
		{"tiny alphabet", "a", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := GenerateCode(tt.alphabet, tt.length)
			require.Error(t, err)
			require.Empty(t, code)
		})
	}
}
