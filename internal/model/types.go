// Package model defines the domain types for the countrylist CLI.
//
// The Country JSON shape mirrors the REST Countries v2 listing
// (alpha2Code, capital, currencies[], latlng, ...) so that the embedded
// dataset, the remote listing and the persisted saved list all share a
// single encoding.
package model

import (
	"fmt"
	"regexp"
	"strings"
)

// NotAvailable is the display placeholder used for optional fields that
// are absent from a Country record.
const NotAvailable = "N/A"

// codeRegex validates a two-letter ISO 3166-1 alpha-2 country code.
// Case is not significant; codes are stored upper-case after NormalizeCode.
var codeRegex = regexp.MustCompile(`^[A-Za-z]{2}$`)

// NormalizeCode trims surrounding whitespace and upper-cases a country code.
// It performs no validation; see ValidateCode.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks that code is a two-letter country code.
func ValidateCode(code string) error {
	if code == "" {
		return fmt.Errorf("country code must not be empty")
	}
	if !codeRegex.MatchString(code) {
		return fmt.Errorf("invalid country code %q: must be two letters", code)
	}
	return nil
}

// Currency is a sub-record of Country. Every field is optional and the
// record has no identity of its own.
type Currency struct {
	Code   string `json:"code,omitempty"`
	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// Country is a single catalog entry.
//
// Identity is the two-letter Alpha2Code and nothing else: two records with
// the same code are the same country even when every other field differs.
// Use Equal rather than == or reflect.DeepEqual when comparing countries.
type Country struct {
	// Name is the display name, e.g. "United Kingdom".
	Name string `json:"name"`

	// Capital is optional. An empty string means the source had no capital.
	Capital string `json:"capital,omitempty"`

	// Currencies lists the currencies in use, in source order.
	Currencies []Currency `json:"currencies,omitempty"`

	// Alpha2Code is the identity key (ISO 3166-1 alpha-2, upper-case).
	Alpha2Code string `json:"alpha2Code"`

	// Region is the continental region, e.g. "Europe".
	Region string `json:"region,omitempty"`

	// Population is a non-negative head count.
	Population int64 `json:"population"`

	// Area is optional, in square kilometres. Nil means unknown.
	Area *float64 `json:"area,omitempty"`

	// Flag is a display glyph (emoji) or flag image identifier.
	Flag string `json:"flag,omitempty"`

	// LatLng is the country centroid as [latitude, longitude] in degrees.
	// Optional; used by the offline reverse geocoder.
	LatLng []float64 `json:"latlng,omitempty"`
}

// Code returns the normalized identity key of the country.
func (c Country) Code() string {
	return NormalizeCode(c.Alpha2Code)
}

// Equal reports whether c and other denote the same country. Only the
// country code takes part in the comparison.
func (c Country) Equal(other Country) bool {
	return strings.EqualFold(strings.TrimSpace(c.Alpha2Code), strings.TrimSpace(other.Alpha2Code))
}

// HasCode reports whether the country's code matches code, ignoring case.
func (c Country) HasCode(code string) bool {
	return c.Code() == NormalizeCode(code)
}

// DisplayCapital returns the capital or NotAvailable.
func (c Country) DisplayCapital() string {
	if c.Capital == "" {
		return NotAvailable
	}
	return c.Capital
}

// DisplayCurrency returns the name of the first currency or NotAvailable.
func (c Country) DisplayCurrency() string {
	if len(c.Currencies) == 0 || c.Currencies[0].Name == "" {
		return NotAvailable
	}
	return c.Currencies[0].Name
}

// DisplayCurrencyCode returns the code of the first currency or NotAvailable.
func (c Country) DisplayCurrencyCode() string {
	if len(c.Currencies) == 0 || c.Currencies[0].Code == "" {
		return NotAvailable
	}
	return c.Currencies[0].Code
}

// Centroid returns the country centroid, if the record carries one.
func (c Country) Centroid() (Coordinate, bool) {
	if len(c.LatLng) != 2 {
		return Coordinate{}, false
	}
	coord := Coordinate{Latitude: c.LatLng[0], Longitude: c.LatLng[1]}
	if coord.Validate() != nil {
		return Coordinate{}, false
	}
	return coord, true
}

// Validate checks the field-level invariants of a Country record.
func (c Country) Validate() error {
	if err := ValidateCode(strings.TrimSpace(c.Alpha2Code)); err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("country %s: name must not be empty", c.Code())
	}
	if c.Population < 0 {
		return fmt.Errorf("country %s: population %d must not be negative", c.Code(), c.Population)
	}
	if c.Area != nil && *c.Area < 0 {
		return fmt.Errorf("country %s: area %g must not be negative", c.Code(), *c.Area)
	}
	return nil
}

// String returns "Name (CODE)".
func (c Country) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Code())
}

// Coordinate is a point on the Earth's surface in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks that the coordinate lies within the valid degree ranges.
func (c Coordinate) Validate() error {
	// NaN fails both comparisons, so it is rejected here as well.
	if !(c.Latitude >= -90 && c.Latitude <= 90) {
		return fmt.Errorf("latitude %v out of range (-90..90)", c.Latitude)
	}
	if !(c.Longitude >= -180 && c.Longitude <= 180) {
		return fmt.Errorf("longitude %v out of range (-180..180)", c.Longitude)
	}
	return nil
}

// ExitCode defines the CLI process exit codes. Scripts can rely on these
// values to distinguish failure classes.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitCatalogUnavailable indicates the country catalog could not be
	// loaded from its source.
	ExitCatalogUnavailable ExitCode = 2

	// ExitCountryNotFound indicates the requested country code is not in
	// the catalog (or not in the saved list, for remove).
	ExitCountryNotFound ExitCode = 3

	// ExitInvalidArgument indicates a malformed command argument, such as
	// a country code that is not two letters.
	ExitInvalidArgument ExitCode = 4

	// ExitConfigError indicates the configuration file could not be
	// parsed or failed validation.
	ExitConfigError ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
