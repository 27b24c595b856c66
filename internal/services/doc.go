// Package services defines the HTTP clients for the chord & song catalog backend.
//
// # Shared Client
//
// All requests flow through a single [Client], which owns the backend base URL
// and the bearer token. The token is process-wide mutable state written by
// login/logout and read by every request; [Client.SetToken] and the per-request
// snapshot share one lock, so a request dispatched after logout can never carry
// a stale token.
//
// # Catalog Interface
//
// Both resource kinds (chords, songs) implement the [Catalog] abstraction,
// enabling the list view and CLI commands to work uniformly across kinds.
// Kind-specific operations (multipart chord create, song create with chord
// ids, media upload) live on the concrete [ChordAPI] and [SongAPI] types.
//
// # Error Handling
//
// HTTP failures map onto typed errors from the shared package:
//   - [shared.ErrInvalidCredentials] : login rejected
//   - [shared.ErrUnauthorized] / [shared.ErrForbidden] : missing session or insufficient privilege
//   - [shared.ErrNotFound] : missing resource
//   - [shared.ErrConflict] : duplicate username
//   - [shared.ErrServiceUnavailable] : transport failure or 5xx
//   - [shared.ErrInvalidInput] : rejected payload
//
// Save/unsave are idempotent from the caller's perspective: the backend's
// "already saved" and "not saved" rejections are swallowed.
package services
