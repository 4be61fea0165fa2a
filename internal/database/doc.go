// Package database provides SQLite-based storage for ffufai.
//
// The SuggestionDB keeps every extension suggestion a run produced. The
// rows double as a cache: a fresh model answer for the same provider,
// model, URL and limit is reused instead of calling the model again, and
// the `history` command lists them.
//
// SQLite (via modernc.org/sqlite) keeps the store a single CGO-free file
// under the XDG data directory.
package database
