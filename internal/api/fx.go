package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/orgball2608/ledgergram/internal/feed"
	"github.com/orgball2608/ledgergram/internal/indexer"
	"github.com/orgball2608/ledgergram/internal/ratelimit"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/internal/storage/comments"
	"github.com/orgball2608/ledgergram/internal/storage/likes"
	"github.com/orgball2608/ledgergram/internal/storage/profile"
	"github.com/orgball2608/ledgergram/internal/storage/stories"
	"github.com/orgball2608/ledgergram/internal/storage/views"
	"github.com/orgball2608/ledgergram/pkg/config"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Blobs    *blob.Store
	Likes    *likes.Store
	Comments *comments.Store
	Profiles *profile.Store
	Stories  *stories.Index
	Views    *views.Tracker
	Feed     *feed.Builder
	Indexer  indexer.Client
}

func NewFromOpts(opts Opts) *Server {
	rl := opts.Config.RateLimit
	return New(Deps{
		Blobs:     opts.Blobs,
		Likes:     opts.Likes,
		Comments:  opts.Comments,
		Profiles:  opts.Profiles,
		Stories:   opts.Stories,
		Views:     opts.Views,
		Feed:      opts.Feed,
		Directory: opts.Indexer,
		Limiter:   ratelimit.NewInMemoryLimiter(rl.Requests, rl.Per, rl.Burst),
		Logger:    opts.Logger,
	})
}

// NewHTTPServer binds the API to App.Port for the lifetime of the fx app.
func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, handler *Server, log logger.Logger) *http.Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			log.Info("Starting server", "addr", srv.Addr)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

var Module = fx.Module("api",
	fx.Provide(NewFromOpts, NewHTTPServer),
	fx.Invoke(func(*http.Server) {}),
)
