// Package store holds the client-side state synchronised with the backend.
//
// Each store owns one entity collection. State changes only after the
// backend confirms an operation: List replaces the collection, Create
// appends, Update replaces in place, Delete removes. A failed operation
// leaves the collection untouched and records the error.
//
// Overlapping List calls are not sequenced: whichever response completes
// last determines the collection, and the loading flag is cleared by the
// first completion.
package store
