// Package tokenstore persists the session credential across client restarts.
//
// A Store only saves, loads and clears an opaque string under the fixed key
// StorageKey. It never inspects the value and never touches the network.
// Losing the stored value (the user wiped the data directory or the
// keychain entry) just means the next start is unauthenticated.
//
// Backends:
//   - SQLiteStore:  the metadata table of the local database (default)
//   - FileStore:    a 0600 file replaced atomically under an advisory lock
//   - KeyringStore: the OS keychain
package tokenstore
