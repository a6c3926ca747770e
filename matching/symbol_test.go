package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	testCases := []struct {
		name  string
		sym   Symbol
		valid bool
	}{
		{
			name:  "valid",
			sym:   NewSymbol(1, "BTC-USDT"),
			valid: true,
		},
		{
			name:  "empty name",
			sym:   NewSymbol(2, ""),
			valid: false,
		},
		{
			name:  "zero value",
			sym:   Symbol{},
			valid: false,
		},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.valid, tc.sym.Valid(), tc.name)
	}
	require.Equal(t, uint32(1), testCases[0].sym.ID())
	require.Equal(t, "BTC-USDT", testCases[0].sym.Name())
}
