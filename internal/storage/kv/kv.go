// Package kv opens the embedded bbolt database holding per-account state.
package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/orgball2608/ledgergram/pkg/config"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"go.etcd.io/bbolt"
	"go.uber.org/fx"
)

const fileName = "state.db"

var (
	BucketViews          = []byte("story_views")
	BucketUsernames      = []byte("usernames")
	BucketUsernameOwners = []byte("username_owners")
	BucketMeta           = []byte("meta")
)

// Open opens (or creates) the database at path and makes sure every bucket exists.
func Open(path string) (*bbolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{BucketViews, BucketUsernames, BucketUsernameOwners, BucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens {DataDir}/state.db and closes it when the app stops.
func New(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*bbolt.DB, error) {
	path := filepath.Join(cfg.Storage.DataDir, fileName)
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	log.Info("State db opened", "path", path)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}
