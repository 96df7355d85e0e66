package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the client's secrets in the OS keychain.
const KeyringService = "jobtracker"

// KeyringStore keeps the credential in the OS keychain under
// (KeyringService, account).
type KeyringStore struct {
	account string
}

// NewKeyringStore uses StorageKey as the account unless one is given.
func NewKeyringStore(account string) *KeyringStore {
	if account == "" {
		account = StorageKey
	}
	return &KeyringStore{account: account}
}

func (s *KeyringStore) Save(ctx context.Context, token string) error {
	if err := keyring.Set(KeyringService, s.account, token); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func (s *KeyringStore) Load(ctx context.Context) (string, error) {
	token, err := keyring.Get(KeyringService, s.account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("keyring get: %w", err)
	}
	return token, nil
}

func (s *KeyringStore) Clear(ctx context.Context) error {
	err := keyring.Delete(KeyringService, s.account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
