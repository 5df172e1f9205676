// Package catalog provides the read-only country catalog and the search
// filter over it.
//
// A catalog is built once from a Source (the bundled dataset, a local file
// or a remote listing) and never mutated afterwards. Any load, parse or
// validation failure produces an empty catalog together with the error; no
// partially loaded catalog is ever returned.
//
// Catalog files may be JSONC (JSON with comments). Comments and trailing
// commas are stripped with github.com/tidwall/jsonc before decoding with
// encoding/json.
package catalog
