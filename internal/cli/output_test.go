// Package cli: output_test.go contains unit tests for the pure formatting
// functions used by the command output helpers.
package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shinji-kodama/countrylist/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

// TestFormatPopulation verifies thousands separators.
func TestFormatPopulation(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{67886011, "67,886,011"},
		{1380004385, "1,380,004,385"},
		{-12345, "-12,345"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPopulation(tt.in))
		})
	}
}

// TestFormatArea verifies the optional area rendering.
func TestFormatArea(t *testing.T) {
	assert.Equal(t, "N/A", FormatArea(nil))
	assert.Equal(t, "3,287,590 km²", FormatArea(floatPtr(3287590)))
	assert.Equal(t, "0.4 km²", FormatArea(floatPtr(0.44)))
}

// TestFormatCurrency verifies that missing parts are omitted.
func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name       string
		currencies []model.Currency
		want       string
	}{
		{name: "none", want: "N/A"},
		{name: "full", currencies: []model.Currency{{Code: "INR", Name: "Indian rupee", Symbol: "₹"}}, want: "Indian rupee (INR) ₹"},
		{name: "no symbol", currencies: []model.Currency{{Code: "CHF", Name: "Swiss franc"}}, want: "Swiss franc (CHF)"},
		{name: "code only", currencies: []model.Currency{{Code: "XXX"}}, want: "(XXX)"},
		{name: "all empty", currencies: []model.Currency{{}}, want: "N/A"},
		{
			name: "first currency wins",
			currencies: []model.Currency{
				{Code: "EUR", Name: "Euro", Symbol: "€"},
				{Code: "USD", Name: "United States dollar", Symbol: "$"},
			},
			want: "Euro (EUR) €",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := model.Country{Name: "X", Alpha2Code: "XX", Currencies: tt.currencies}
			assert.Equal(t, tt.want, FormatCurrency(c))
		})
	}
}

// TestFormatHelpers covers the small text helpers.
func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "N/A", FormatOptional(""))
	assert.Equal(t, "N/A", FormatOptional("  "))
	assert.Equal(t, "Asia", FormatOptional("Asia"))
	assert.Equal(t, "yes", FormatYesNo(true))
	assert.Equal(t, "no", FormatYesNo(false))
	assert.Equal(t, "3/5", FormatSavedCount(3))
}

// TestPrintCountryTable verifies saved markers and N/A fallbacks.
func TestPrintCountryTable(t *testing.T) {
	countries := []model.Country{
		{Name: "India", Capital: "New Delhi", Alpha2Code: "IN", Region: "Asia"},
		{Name: "Nowhere", Alpha2Code: "NW"},
	}

	var buf bytes.Buffer
	printCountryTable(&buf, countries, func(code string) bool { return code == "IN" })

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	assert.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "CODE")
	assert.Contains(t, string(lines[1]), "*  IN")
	assert.Contains(t, string(lines[2]), "NW")
	assert.Contains(t, string(lines[2]), "N/A")
	assert.NotContains(t, string(lines[2]), "*")
}
