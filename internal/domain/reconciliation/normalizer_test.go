package reconciliation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocaleNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"thousands separator and decimal comma", "1 234,56", "1234.56"},
		{"negative deduction", "-1 629,21", "-1629.21"},
		{"empty input is zero", "", "0"},
		{"whitespace only is zero", "   ", "0"},
		{"unparseable is zero", "abc", "0"},
		{"plain integer", "42", "42"},
		{"no thousands group", "987,10", "987.1"},
		{"multiple groups", "12 345 678,90", "12345678.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			got := ParseLocaleNumber(tt.input)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestParseLocaleDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got := ParseLocaleDate("23/12/2025")
		require.NotNil(t, got)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.December, got.Month())
		assert.Equal(t, 23, got.Day())
	})

	t.Run("date embedded in free text", func(t *testing.T) {
		got := ParseLocaleDate("Pagamento em 05/03/2026 conforme acordo")
		require.NotNil(t, got)
		assert.Equal(t, 2026, got.Year())
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, 5, got.Day())
	})

	t.Run("no date yields nil", func(t *testing.T) {
		assert.Nil(t, ParseLocaleDate("not a date"))
	})

	t.Run("impossible date yields nil", func(t *testing.T) {
		assert.Nil(t, ParseLocaleDate("99/99/2025"))
	})
}

func TestLastMoneyValues(t *testing.T) {
	t.Run("takes the trailing values", func(t *testing.T) {
		values, ok := lastMoneyValues("AA SKOL 350ML  1 234,56  -12,34  1 222,22", 3)
		require.True(t, ok)
		require.Len(t, values, 3)
		assert.True(t, values[0].Equal(decimal.RequireFromString("1234.56")))
		assert.True(t, values[1].Equal(decimal.RequireFromString("-12.34")))
		assert.True(t, values[2].Equal(decimal.RequireFromString("1222.22")))
	})

	t.Run("too few tokens", func(t *testing.T) {
		_, ok := lastMoneyValues("TOTAL  1 234,56", 3)
		assert.False(t, ok)
	})

	t.Run("plain integers are not money", func(t *testing.T) {
		_, ok := lastMoneyValues("1234 5678", 1)
		assert.False(t, ok)
	})
}
