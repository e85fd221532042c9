// Package storage wires the file-backed stores and the embedded state db.
package storage

import (
	"context"

	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/internal/storage/comments"
	"github.com/orgball2608/ledgergram/internal/storage/kv"
	"github.com/orgball2608/ledgergram/internal/storage/likes"
	"github.com/orgball2608/ledgergram/internal/storage/profile"
	"github.com/orgball2608/ledgergram/internal/storage/stories"
	"github.com/orgball2608/ledgergram/internal/storage/views"
	"github.com/orgball2608/ledgergram/pkg/config"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"go.etcd.io/bbolt"
	"go.uber.org/fx"
)

func newServerKey(cfg *config.Config) (crypto.ServerKey, error) {
	return crypto.ServerKeyFromSecret(cfg.Crypto.EncryptionKey)
}

func newLikes(cfg *config.Config, log logger.Logger) *likes.Store {
	return likes.New(cfg.Storage.MediaRoot, log)
}

func newComments(cfg *config.Config, key crypto.ServerKey, log logger.Logger) *comments.Store {
	return comments.New(cfg.Storage.MediaRoot, key, log)
}

func newProfile(cfg *config.Config, key crypto.ServerKey, db *bbolt.DB, log logger.Logger) *profile.Store {
	return profile.New(cfg.Storage.MediaRoot, key, db, log)
}

func newStories(b *blob.Store) *stories.Index {
	return stories.New(b)
}

func asCascader[T blob.Cascader](s T) blob.Cascader {
	return s
}

// seed imports the legacy view table and rebuilds the username index before serving.
func seed(lc fx.Lifecycle, cfg *config.Config, tracker *views.Tracker, profiles *profile.Store, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := tracker.ImportLegacy(ctx, cfg.Storage.LegacyViewsFile); err != nil {
				log.Warn("Legacy story views not imported", "error", err)
			}
			if _, err := profiles.RebuildIndex(ctx); err != nil {
				return err
			}
			return nil
		},
	})
}

var Module = fx.Module("storage",
	fx.Provide(
		newServerKey,
		kv.New,
		views.New,
		newLikes,
		newComments,
		newProfile,
		newStories,
		fx.Annotate(asCascader[*likes.Store], fx.ResultTags(blob.CascadeGroup)),
		fx.Annotate(asCascader[*comments.Store], fx.ResultTags(blob.CascadeGroup)),
	),
	blob.Module,
	fx.Invoke(seed),
)
