// Package repositories persists the local listing cache.
//
// The cache holds the last-fetched chord/song listings and saved-set ids so
// `strum cache show` can answer without the backend. It is advisory UI state,
// not a cache of truth: every successful fetch replaces the previous rows
// wholesale, and read paths never fall back to it silently.
package repositories
