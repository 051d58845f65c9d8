package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"45.00", "45.00"},
		{"-45.00", "-45.00"},
		{"(123.45)", "-123.45"},
		{"1,234.50", "1234.50"},
		{`"1,234.50"`, "1234.50"},
		{"  12.00  ", "12.00"},
		{"garbage", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestParseDate(t *testing.T) {
	d := ParseDate("01/03/2024")
	assert.True(t, d.Valid())
	assert.Equal(t, "2024-03-01", d.String())

	// Unparsable text is preserved, never dropped.
	d = ParseDate("not a date")
	assert.False(t, d.Valid())
	assert.Equal(t, "not a date", d.String())

	// Month-first text does not parse as day-first when the day is invalid.
	d = ParseDate("03/45/2024")
	assert.False(t, d.Valid())
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "WOOLWORTHS METRO", CleanDescription(`"WOOLWORTHS   METRO"`))
	assert.Equal(t, "TRANSFER TO xx5784", CleanDescription("  TRANSFER  TO xx5784 "))
	assert.Equal(t, "", CleanDescription(`""`))
}
