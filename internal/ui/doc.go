// Package ui implements the interactive catalog browser using bubbletea's Elm architecture.
//
// One [Model] serves both resource kinds; a [Config] supplies the catalog
// client, the create-form fields, and the debounce window, so chords and
// songs share a single view-model instead of one bespoke page each.
//
// The browse view is a small fetch state machine (idle, loading, loaded,
// failed) that re-enters loading whenever the effective filter changes:
//
//   - Search keystrokes are debounced before becoming part of the filter,
//     using tea.Tick with an input sequence number.
//   - Every fetch carries a monotonically increasing sequence; a completed
//     fetch whose sequence is no longer current is discarded, so the list
//     always reflects the last-issued filter regardless of arrival order.
//   - Sort order by display name is applied client-side and toggleable.
//   - Save toggles update the local saved-set on success and trigger a
//     silent saved-list refresh to reconcile with the server.
//   - Create and delete affordances appear only for an admin session; the
//     gate is cosmetic, the backend enforces the real policy.
//
// Keyboard navigation uses vim-style bindings with contextual help displayed
// via charmbracelet/bubbles/help.
package ui
