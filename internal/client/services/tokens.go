package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authdemo/internal/common"
	"github.com/dmitrijs2005/authdemo/internal/dbx"
)

// TokenStore persists the bearer token under a fixed key. Writes are visible
// to the next Load as soon as they return.
type TokenStore interface {
	// Load returns common.ErrorTokenNotFound when no token is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	// Delete is idempotent.
	Delete(ctx context.Context) error
}

type metadataTokenStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewTokenStore keeps the token in the metadata table of db.
func NewTokenStore(db *sql.DB) TokenStore {
	return &metadataTokenStore{db: db, now: time.Now}
}

func (s *metadataTokenStore) Load(ctx context.Context) (string, error) {
	v, ok, err := metadata.NewSQLiteStore(s.db).Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if !ok || v == "" {
		return "", common.ErrorTokenNotFound
	}
	return v, nil
}

// Save writes the token together with the time it was stored.
func (s *metadataTokenStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := metadata.NewSQLiteStore(tx)
		if err := store.Put(ctx, common.TokenStorageKey, token); err != nil {
			return err
		}
		return store.Put(ctx, common.TokenSavedAtKey, s.now().UTC().Format(time.RFC3339))
	})
}

func (s *metadataTokenStore) Delete(ctx context.Context) error {
	return metadata.NewSQLiteStore(s.db).Delete(ctx, common.TokenStorageKey, common.TokenSavedAtKey)
}
