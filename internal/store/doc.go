// Package store owns all persistence for stocklens.
//
// Write semantics are deliberately asymmetric:
//   - daily price bars: last-write-wins (a re-fetch is an authoritative
//     correction and replaces the whole row)
//   - news: first-write-wins keyed by url (the first-seen version of an
//     article is canonical and never overwritten)
//
// Every store method is safe for concurrent callers; each call is its own
// transaction scope.
package store
