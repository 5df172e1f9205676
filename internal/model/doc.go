// Package model defines the domain types and value objects for the
// countrylist CLI.
//
// This package contains pure data structures with no external dependencies.
// Country records are immutable values: the catalog owns the canonical set
// and the saved list holds copies, never a separately mutated instance.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
