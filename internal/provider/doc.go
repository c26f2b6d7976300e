// Package provider wraps the upstream quote/news REST API.
//
// Contract surfaced to callers:
//   - success: extracted bars or news items
//   - empty: nil error with zero items (valid for delisted/new symbols)
//   - failure: transport or server error, retried internally with backoff
//
// The client never caches; every fetch goes to the network.
package provider
