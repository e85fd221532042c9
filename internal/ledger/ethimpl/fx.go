package ethimpl

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/ledger"
	"github.com/orgball2608/ledgergram/pkg/config"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"go.uber.org/fx"
)

func optionalAddress(s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	return domain.ParseAddress(s)
}

// NewFromConfig dials the node lazily and closes the client on stop.
func NewFromConfig(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*Impl, error) {
	postAddr, err := domain.ParseAddress(cfg.Ledger.PostContract)
	if err != nil {
		return nil, fmt.Errorf("LEDGER_POST_CONTRACT: %w", err)
	}
	tokenAddr, err := optionalAddress(cfg.Ledger.TokenContract)
	if err != nil {
		return nil, fmt.Errorf("LEDGER_TOKEN_CONTRACT: %w", err)
	}
	key, err := ParsePrivateKey(cfg.Ledger.PrivateKey)
	if err != nil {
		return nil, err
	}

	client, err := ethclient.Dial(cfg.Ledger.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ledger node: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.Close()
			return nil
		},
	})

	log.Info("Ledger gateway configured", "rpc", cfg.Ledger.RPCURL, "postContract", postAddr.Hex(), "readOnly", key == nil)
	return New(Opts{
		Backend:       client,
		PostContract:  postAddr,
		TokenContract: tokenAddr,
		PrivateKey:    key,
		ChainID:       big.NewInt(cfg.Ledger.ChainID),
		Logger:        log,
	})
}

var Module = fx.Provide(
	fx.Annotate(NewFromConfig, fx.As(new(ledger.Gateway))),
)
