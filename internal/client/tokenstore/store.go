package tokenstore

import (
	"context"
	"fmt"
)

// StorageKey is the fixed key every backend stores the credential under.
const StorageKey = "auth_token"

// Store is the durable home of the session credential.
// Load returns "" when nothing is stored.
type Store interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Kind names a backend in configuration.
type Kind string

const (
	KindSQLite  Kind = "sqlite"
	KindFile    Kind = "file"
	KindKeyring Kind = "keyring"
)

// ParseKind validates a backend name from configuration.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSQLite, KindFile, KindKeyring:
		return k, nil
	default:
		return "", fmt.Errorf("unknown token store %q (want sqlite, file or keyring)", s)
	}
}
