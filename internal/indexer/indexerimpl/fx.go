package indexerimpl

import (
	"github.com/orgball2608/ledgergram/internal/indexer"
	"github.com/orgball2608/ledgergram/internal/storage/profile"
	"go.uber.org/fx"
)

func usernameReader(p *profile.Store) UsernameReader {
	return p
}

var Module = fx.Module("indexer",
	fx.Provide(
		usernameReader,
		fx.Annotate(New, fx.As(new(indexer.Client))),
	),
)
