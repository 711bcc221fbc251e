// Package cli provides the interactive Hack or Snooze command-line client.
//
// It wires configuration, the local credential store, the API client and
// the story and auth services behind a small REPL. On start the previous
// session is resumed from stored credentials and the story list is loaded.
//
// Key features:
//   - Signup / Login / Logout, with the session kept across runs
//   - List all stories, favorites or the user's own stories
//   - Submit, edit and delete stories
//   - Add and remove favorites
//   - Profile, rename and password change
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
