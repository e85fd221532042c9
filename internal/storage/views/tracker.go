// Package views tracks which stories each account has seen.
package views

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/orgball2608/ledgergram/internal/storage/kv"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"go.etcd.io/bbolt"
)

var legacyImportedKey = []byte("legacy_views_imported")

type Tracker struct {
	db     *bbolt.DB
	logger logger.Logger
}

func New(db *bbolt.DB, log logger.Logger) *Tracker {
	return &Tracker{db: db, logger: log.WithComponent("ViewTracker")}
}

func accountKey(account string) ([]byte, error) {
	a := strings.ToLower(strings.TrimSpace(account))
	if a == "" {
		return nil, apperrors.Invalid("account is required")
	}
	return []byte(a), nil
}

func get(b *bbolt.Bucket, key []byte) ([]string, error) {
	raw := b.Get(key)
	if raw == nil {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode views for %s: %w", key, err)
	}
	return ids, nil
}

func put(b *bbolt.Bucket, key []byte, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return b.Put(key, raw)
}

// update runs fn over one account's list inside a single read-write transaction.
func (t *Tracker) update(ctx context.Context, account string, fn func([]string) ([]string, bool)) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := accountKey(account)
	if err != nil {
		return nil, err
	}

	var out []string
	err = t.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(kv.BucketViews)
		ids, err := get(b, key)
		if err != nil {
			return err
		}
		next, changed := fn(ids)
		out = next
		if !changed {
			return nil
		}
		return put(b, key, next)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkViewed adds storyID to the account's viewed list and returns the list.
func (t *Tracker) MarkViewed(ctx context.Context, account, storyID string) ([]string, error) {
	if storyID == "" {
		return nil, apperrors.Invalid("storyId is required")
	}
	return t.update(ctx, account, func(ids []string) ([]string, bool) {
		for _, id := range ids {
			if id == storyID {
				return ids, false
			}
		}
		return append(ids, storyID), true
	})
}

// Unmark removes storyID so the story shows as unseen again.
func (t *Tracker) Unmark(ctx context.Context, account, storyID string) ([]string, error) {
	if storyID == "" {
		return nil, apperrors.Invalid("storyId is required")
	}
	return t.update(ctx, account, func(ids []string) ([]string, bool) {
		next := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != storyID {
				next = append(next, id)
			}
		}
		return next, len(next) != len(ids)
	})
}

func (t *Tracker) ListViewed(ctx context.Context, account string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := accountKey(account)
	if err != nil {
		return nil, err
	}

	var out []string
	err = t.db.View(func(tx *bbolt.Tx) error {
		out, err = get(tx.Bucket(kv.BucketViews), key)
		return err
	})
	return out, err
}

// ImportLegacy merges a {account: [storyId...]} JSON table into the bucket. It runs once;
// a missing file is not an error. It returns the number of accounts imported.
func (t *Tracker) ImportLegacy(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if path == "" {
		return 0, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read legacy views: %w", err)
	}
	var table map[string][]string
	if err := json.Unmarshal(raw, &table); err != nil {
		return 0, fmt.Errorf("failed to parse legacy views: %w", err)
	}

	imported := 0
	err = t.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(kv.BucketMeta)
		if meta.Get(legacyImportedKey) != nil {
			return nil
		}

		b := tx.Bucket(kv.BucketViews)
		for account, ids := range table {
			key, err := accountKey(account)
			if err != nil {
				continue
			}
			existing, err := get(b, key)
			if err != nil {
				return err
			}
			seen := make(map[string]struct{}, len(existing))
			for _, id := range existing {
				seen[id] = struct{}{}
			}
			for _, id := range ids {
				if _, ok := seen[id]; ok || id == "" {
					continue
				}
				seen[id] = struct{}{}
				existing = append(existing, id)
			}
			if err := put(b, key, existing); err != nil {
				return err
			}
			imported++
		}
		return meta.Put(legacyImportedKey, []byte(path))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import legacy views: %w", err)
	}

	if imported > 0 {
		t.logger.Info("Imported legacy story views", "path", path, "accounts", imported)
	}
	return imported, nil
}
