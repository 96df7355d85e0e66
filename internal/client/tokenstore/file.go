package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/filex"
	"github.com/gofrs/flock"
)

// FileStore keeps the credential in a single owner-readable file.
// Every operation holds an exclusive lock on "<path>.lock", so concurrent
// client processes never observe a half-written token.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore stores the credential in dir/StorageKey.
func NewFileStore(dir string) *FileStore {
	path := filepath.Join(dir, StorageKey)
	return &FileStore{path: path, lock: flock.New(path + ".lock")}
}

func (s *FileStore) withLock(fn func() error) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	defer s.lock.Unlock()
	return fn()
}

func (s *FileStore) Save(ctx context.Context, token string) error {
	return s.withLock(func() error {
		return filex.WriteFileAtomic(s.path, []byte(token), 0o600)
	})
}

func (s *FileStore) Load(ctx context.Context) (string, error) {
	var token string
	err := s.withLock(func() error {
		b, err := os.ReadFile(s.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", s.path, err)
		}
		token = strings.TrimSpace(string(b))
		return nil
	})
	return token, err
}

func (s *FileStore) Clear(ctx context.Context) error {
	return s.withLock(func() error {
		err := os.Remove(s.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", s.path, err)
		}
		return nil
	})
}
