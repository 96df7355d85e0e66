package tokenstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
)

const savedAtKey = StorageKey + "_saved_at"

// SQLiteStore keeps the credential in the metadata table of the local
// database. The table must exist (see client.InitDatabase).
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, StorageKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, savedAtKey, s.now().UTC().Format(time.RFC3339))
	})
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	token, _, err := metadata.NewSQLiteRepository(s.db).Get(ctx, StorageKey)
	return token, err
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, StorageKey); err != nil {
			return err
		}
		return repo.Delete(ctx, savedAtKey)
	})
}

// SavedAt reports when the stored credential was written. ok is false when
// nothing is stored.
func (s *SQLiteStore) SavedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	raw, ok, err := metadata.NewSQLiteRepository(s.db).Get(ctx, savedAtKey)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
