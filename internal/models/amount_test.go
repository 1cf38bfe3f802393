package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"$150,000,000", "150000000", true},
		{"15,000,000", "15000000", true},
		{" $10.00 ", "10", true},
		{"N/A", "0", false},
		{"", "0", false},
		{"$14.00-$16.00", "0", false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "%s: got %s", tt.in, got)
	}
}

func TestFormatUSD(t *testing.T) {
	tests := map[string]string{
		"0":         "$0.00",
		"999":       "$999.00",
		"1000":      "$1,000.00",
		"172500000": "$172,500,000.00",
		"1234567.5": "$1,234,567.50",
		"0.005":     "$0.01",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatUSD(decimal.RequireFromString(in)), in)
	}
}
