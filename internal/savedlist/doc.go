// Package savedlist implements the user's bounded list of saved countries.
//
// The list is insertion-ordered, holds at most Capacity countries and never
// holds two countries with the same code. Every mutation is handed to a
// Persister synchronously, before the mutating call returns.
package savedlist
