package app

import (
	"context"

	"github.com/orgball2608/ledgergram/internal/api"
	"github.com/orgball2608/ledgergram/internal/feed"
	"github.com/orgball2608/ledgergram/internal/indexer"
	"github.com/orgball2608/ledgergram/internal/indexer/indexerimpl"
	"github.com/orgball2608/ledgergram/internal/ledger/ethimpl"
	"github.com/orgball2608/ledgergram/internal/migrations"
	repositories "github.com/orgball2608/ledgergram/internal/repositories/fx"
	"github.com/orgball2608/ledgergram/internal/storage"
	"github.com/orgball2608/ledgergram/internal/telegram"
	"github.com/orgball2608/ledgergram/internal/telegram/telegramimpl"
	"github.com/orgball2608/ledgergram/pkg/config"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"github.com/orgball2608/ledgergram/pkg/pgx"
	"go.uber.org/fx"
)

// Module assembles the service. Postgres and the indexer jobs are only wired
// when the indexer is enabled; the directory then falls back to the media root.
func Module(cfg *config.Config) fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(logger.FxOption),
		storage.Module,
		ethimpl.Module,
		feed.Module,
		telegramimpl.Module,
		indexerimpl.Module,
	}

	// Start hooks run in registration order: migrations before the jobs and the server.
	if cfg.Indexer.Enabled {
		opts = append(opts, fx.Module("indexer_store",
			fx.Provide(pgx.New),
			repositories.Module,
			fx.Invoke(migrate),
			fx.Invoke(schedule),
		))
	}

	return fx.Options(append(opts, api.Module)...)
}

func migrate(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := migrations.Up(ctx, cfg.GetDSN()); err != nil {
				return err
			}
			log.Info("Database migrations applied")
			return nil
		},
	})
}

func schedule(lc fx.Lifecycle, log logger.Logger, idx indexer.Client, tg telegram.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := idx.Schedule(ctx); err != nil {
				log.Error("Indexer schedule error", "error", err)
				tg.SendMessageToOps("Indexer schedule error: " + err.Error())
				return err
			}
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
