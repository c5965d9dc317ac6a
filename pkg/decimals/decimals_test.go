package decimals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain integer", input: "9000", want: "9000"},
		{name: "fractional", input: "0.12345678", want: "0.12345678"},
		{name: "negative", input: "-4.2", want: "-4.2"},
		{name: "empty means zero", input: "", want: "0"},
		{name: "garbage", input: "12x.4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestSafeDiv(t *testing.T) {
	ten := decimal.NewFromInt(10)
	four := decimal.NewFromInt(4)

	require.True(t, SafeDiv(ten, four).Equal(decimal.RequireFromString("2.5")))
	require.True(t, SafeDiv(ten, decimal.Zero).IsZero())
	require.True(t, SafeDiv(decimal.Zero, decimal.Zero).IsZero())
}
