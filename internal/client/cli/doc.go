// Package cli provides the interactive Wayfarer command-line client.
//
// It wires configuration, the local SQLite store, the blob cache, the HTTP
// backend client, the login rate limiter, and the sync coordinator into an
// interactive REPL that works both online and offline. Typical flow: prompt
// for credentials (or restore the cached session), start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Login / Logout (online with cached-session offline fallback)
//   - List, add, rename, and delete trips; edits made offline are queued
//   - Sync the pending queue on demand or automatically when back online
//   - Inspect and clear the offline cache
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
