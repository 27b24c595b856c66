// Package models defines the domain entities exchanged with the chord & song catalog backend.
//
// The package contains two categories of types:
//
// 1. Server-owned entities decoded from API responses:
//   - [Chord] : a guitar chord with fingering, description, and media URLs
//   - [Song] : a song with lyrics, genre, and its related chords
//
// 2. Client-side payloads validated before any network call:
//   - [Credentials] : transient login/register payload, never persisted
//   - [ChordDraft] : admin chord submission (text fields + media file paths)
//   - [SongDraft] : admin song submission with related chord ids
//
// Draft validation enforces the backend's input rules locally so malformed
// submissions are rejected with an actionable message and no request is sent.
package models
