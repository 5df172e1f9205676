// Package manager composes the country catalog, the saved list and the
// location-based seeding flow into the single object a presentation layer
// talks to.
//
// A Manager is constructed explicitly and passed to its consumers. There is
// no package-level instance: the CLI builds one per invocation from its
// configuration, and tests build as many as they need.
//
// Design decisions:
//   - The saved list is loaded from the store once, in New. The catalog is
//     loaded separately by Load so a caller can observe IsLoading and
//     ErrorMessage around it.
//   - Seeding waits on a one-shot channel with a bounded timeout instead of
//     sleeping for a fixed delay and checking afterwards.
//   - A failed catalog load is not fatal to the manager. The catalog stays
//     empty, ErrorMessage carries a user-facing message, and the saved list
//     keeps working.
package manager
