package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shinji-kodama/countrylist/internal/model"
	"github.com/shinji-kodama/countrylist/internal/savedlist"
)

// countryJSON is the JSON output structure for a single country. Optional
// fields are resolved to "N/A" the same way the text output shows them.
type countryJSON struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Capital    string   `json:"capital"`
	Region     string   `json:"region"`
	Population int64    `json:"population"`
	Area       *float64 `json:"area"`
	Currency   string   `json:"currency"`
	Flag       string   `json:"flag,omitempty"`
	Saved      bool     `json:"saved"`
}

func toCountryJSON(c model.Country, saved bool) countryJSON {
	return countryJSON{
		Code:       c.Code(),
		Name:       c.Name,
		Capital:    c.DisplayCapital(),
		Region:     c.Region,
		Population: c.Population,
		Area:       c.Area,
		Currency:   c.DisplayCurrency(),
		Flag:       c.Flag,
		Saved:      saved,
	}
}

// toCountriesJSON converts countries, marking the ones isSaved reports.
// The result is never nil so empty output encodes as [] rather than null.
func toCountriesJSON(countries []model.Country, isSaved func(code string) bool) []countryJSON {
	out := make([]countryJSON, 0, len(countries))
	for _, c := range countries {
		out = append(out, toCountryJSON(c, isSaved(c.Code())))
	}
	return out
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printCountryTable writes countries as an aligned text table.
// Saved countries are marked with "*" in the first column.
//
//	   CODE  NAME                       CAPITAL           REGION
//	*  IN    India                      New Delhi         Asia
//	   GB    United Kingdom             London            Europe
func printCountryTable(w io.Writer, countries []model.Country, isSaved func(code string) bool) {
	fmt.Fprintf(w, "%-2s %-5s %-26s %-17s %s\n", "", "CODE", "NAME", "CAPITAL", "REGION")
	for _, c := range countries {
		mark := ""
		if isSaved(c.Code()) {
			mark = "*"
		}
		fmt.Fprintf(w, "%-2s %-5s %-26s %-17s %s\n",
			mark, c.Code(), c.Name, c.DisplayCapital(), FormatOptional(c.Region))
	}
}

// printCountryDetail writes every field of a country, one per line.
func printCountryDetail(w io.Writer, c model.Country, saved bool) {
	title := c.Name
	if c.Flag != "" && !strings.Contains(c.Flag, "/") {
		title = c.Flag + " " + c.Name
	}
	fmt.Fprintf(w, "%s (%s)\n", title, c.Code())
	fmt.Fprintf(w, "  Capital:    %s\n", c.DisplayCapital())
	fmt.Fprintf(w, "  Region:     %s\n", FormatOptional(c.Region))
	fmt.Fprintf(w, "  Population: %s\n", FormatPopulation(c.Population))
	fmt.Fprintf(w, "  Area:       %s\n", FormatArea(c.Area))
	fmt.Fprintf(w, "  Currency:   %s\n", FormatCurrency(c))
	fmt.Fprintf(w, "  Saved:      %s\n", FormatYesNo(saved))
}

// FormatPopulation renders n with comma thousands separators.
//
// Example:
//
//	1380004385 → "1,380,004,385"
//	999        → "999"
func FormatPopulation(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatArea renders an optional area in square kilometres, or "N/A".
func FormatArea(area *float64) string {
	if area == nil {
		return model.NotAvailable
	}
	whole := int64(*area)
	if float64(whole) == *area {
		return FormatPopulation(whole) + " km²"
	}
	return strconv.FormatFloat(*area, 'f', 1, 64) + " km²"
}

// FormatCurrency renders the primary currency as "Name (CODE) Symbol",
// omitting the parts that are missing. Returns "N/A" when there is none.
func FormatCurrency(c model.Country) string {
	if len(c.Currencies) == 0 {
		return model.NotAvailable
	}
	cur := c.Currencies[0]

	parts := make([]string, 0, 3)
	if cur.Name != "" {
		parts = append(parts, cur.Name)
	}
	if cur.Code != "" {
		parts = append(parts, "("+cur.Code+")")
	}
	if cur.Symbol != "" {
		parts = append(parts, cur.Symbol)
	}
	if len(parts) == 0 {
		return model.NotAvailable
	}
	return strings.Join(parts, " ")
}

// FormatOptional returns s, or "N/A" when s is blank.
func FormatOptional(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.NotAvailable
	}
	return s
}

// FormatYesNo renders a boolean for text output.
func FormatYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatSavedCount renders the saved list fill level, e.g. "3/5".
func FormatSavedCount(n int) string {
	return fmt.Sprintf("%d/%d", n, savedlist.Capacity)
}
