// Package location resolves the user's home country once, on a best-effort
// basis, for seeding the saved list.
//
// Resolution is a single pass: obtain one location fix from a Locator,
// reverse-geocode it to a country code with a Geocoder, and publish the code
// on a one-shot channel. Any failure along the way publishes the fallback
// code instead. Consumers wait for the published code with Await, which
// bounds the wait and falls back as well, so seeding never blocks on a slow
// or absent location source.
//
// The bundled Geocoder works offline: it picks the catalog country whose
// centroid is nearest to the fix, measured as great-circle distance with
// github.com/golang/geo/s2.
package location
