// Package storage provides the flat key-value stores the application
// persists into, and the adapter that reads and writes the saved-country
// list under its fixed key.
//
// Two stores are provided: MemoryStore for tests and ephemeral sessions,
// and FileStore, which keeps one JSON file per key in a directory and
// replaces files atomically (write to a temp file, then rename).
package storage
