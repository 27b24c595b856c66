// Package tasks implements long-running library operations against the catalog.
//
// The core abstraction is [LibraryEngine], which exports the session's saved
// chords and songs to a JSON dump and bulk-creates chords from such a dump.
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer, and bulk creation is rate limited so an import
// cannot hammer the backend.
package tasks
