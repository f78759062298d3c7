package exchange

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	converter "go-currency-converter"
)

func TestFormatIDR(t *testing.T) {
	assert.Equal(t, "30.000", FormatIDR(30000))
	assert.Equal(t, "1.500", FormatIDR(1500))
	assert.Equal(t, "750", FormatIDR(750))
	assert.Equal(t, "1.467,46", FormatIDR(1467.456))
}

func TestFormatSEK(t *testing.T) {
	assert.Equal(t, "20.00", FormatSEK(20))
	assert.Equal(t, "0.33", FormatSEK(1.0/3))
	assert.Equal(t, "1234.50", FormatSEK(1234.5))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "75.000", Format(75000, converter.IDR))
	assert.Equal(t, "50.00", Format(50, converter.SEK))
}

func TestFormatInverse(t *testing.T) {
	assert.Equal(t, "0.000667", FormatInverse(1.0/1500))
}

func TestFormatEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		base  converter.Currency
		want  string
	}{
		{"idr grouped", "150000", converter.IDR, "150.000"},
		{"idr drops fraction", "1500.75", converter.IDR, "1.500"},
		{"idr empty", "", converter.IDR, "0"},
		{"idr garbage", "+", converter.IDR, "0"},
		{"sek as typed", "12.5", converter.SEK, "12.5"},
		{"sek empty", "", converter.SEK, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEntry(tt.entry, tt.base))
		})
	}
}

func TestFormatEntry_LongIDR(t *testing.T) {
	got := FormatEntry("123456789012345678901234", converter.IDR)

	assert.True(t, strings.HasPrefix(got, "123.456.789.012.345"), got)
	assert.Equal(t, 7, strings.Count(got, "."), got)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		entry string
		want  converter.Amount
	}{
		{"", 0},
		{"42", 42},
		{"12.5", 12.5},
		{"5.", 5},
		{".5", 0.5},
		{"-3", -3},
		{"20+50", 20},
		{"1.2.3", 1.2},
		{"+", 0},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.entry))
		})
	}
}
