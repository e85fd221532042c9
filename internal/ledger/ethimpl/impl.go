package ethimpl

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/ledger"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/orgball2608/ledgergram/pkg/logger"
)

// Backend is what the gateway needs from a node connection; *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BlockNumber(ctx context.Context) (uint64, error)
}

type Opts struct {
	Backend       Backend
	PostContract  common.Address
	TokenContract common.Address
	PrivateKey    *ecdsa.PrivateKey
	ChainID       *big.Int
	Logger        logger.Logger
}

type Impl struct {
	backend   Backend
	postAddr  common.Address
	tokenAddr common.Address
	postABI   abi.ABI
	tokenABI  abi.ABI
	post      *bind.BoundContract
	token     *bind.BoundContract
	key       *ecdsa.PrivateKey
	chainID   *big.Int
	logger    logger.Logger
}

var _ ledger.Gateway = (*Impl)(nil)

func New(opts Opts) (*Impl, error) {
	postABI, tokenABI, err := parseABIs()
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract abi: %w", err)
	}

	impl := &Impl{
		backend:   opts.Backend,
		postAddr:  opts.PostContract,
		tokenAddr: opts.TokenContract,
		postABI:   postABI,
		tokenABI:  tokenABI,
		post:      bind.NewBoundContract(opts.PostContract, postABI, opts.Backend, opts.Backend, opts.Backend),
		key:       opts.PrivateKey,
		chainID:   opts.ChainID,
		logger:    opts.Logger.WithComponent("Ledger"),
	}
	if opts.TokenContract != (common.Address{}) {
		impl.token = bind.NewBoundContract(opts.TokenContract, tokenABI, opts.Backend, opts.Backend, opts.Backend)
	}
	return impl, nil
}

// ParsePrivateKey accepts a hex key with or without 0x; an empty string means read-only.
func ParsePrivateKey(s string) (*ecdsa.PrivateKey, error) {
	if s == "" {
		return nil, nil
	}
	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_PRIVATE_KEY: %w", err)
	}
	return key, nil
}

func wrap(method string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrLedger, method, err)
}

func (i *Impl) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := i.post.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, wrap(method, err)
	}
	if len(out) == 0 {
		return nil, wrap(method, errors.New("empty result"))
	}
	return out, nil
}

func (i *Impl) PostCount(ctx context.Context) (uint64, error) {
	out, err := i.call(ctx, "postCount")
	if err != nil {
		return 0, err
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int).Uint64(), nil
}

func (i *Impl) Post(ctx context.Context, id uint64) (domain.Post, error) {
	out, err := i.call(ctx, "posts", new(big.Int).SetUint64(id))
	if err != nil {
		return domain.Post{}, err
	}
	if len(out) < 4 {
		return domain.Post{}, wrap("posts", fmt.Errorf("unexpected %d outputs", len(out)))
	}

	postID := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	author := *abi.ConvertType(out[1], new(common.Address)).(*common.Address)
	contentHash := *abi.ConvertType(out[2], new(string)).(*string)
	ts := abi.ConvertType(out[3], new(big.Int)).(*big.Int)

	return domain.Post{
		ID:          postID.Uint64(),
		Author:      author,
		ContentHash: contentHash,
		Timestamp:   time.Unix(ts.Int64(), 0).UTC(),
	}, nil
}

func (i *Impl) stringOf(ctx context.Context, method string, addr common.Address) (string, error) {
	out, err := i.call(ctx, method, addr)
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (i *Impl) Username(ctx context.Context, addr common.Address) (string, error) {
	return i.stringOf(ctx, "usernames", addr)
}

func (i *Impl) Bio(ctx context.Context, addr common.Address) (string, error) {
	return i.stringOf(ctx, "bios", addr)
}

func (i *Impl) GetFollowing(ctx context.Context, addr common.Address) ([]common.Address, error) {
	out, err := i.call(ctx, "getFollowing", addr)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

func (i *Impl) IsFollowing(ctx context.Context, follower, followee common.Address) (bool, error) {
	out, err := i.call(ctx, "isFollowing", follower, followee)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (i *Impl) IsLiked(ctx context.Context, postID uint64, user common.Address) (bool, error) {
	out, err := i.call(ctx, "isLiked", new(big.Int).SetUint64(postID), user)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (i *Impl) PostLikeCount(ctx context.Context, postID uint64) (uint64, error) {
	out, err := i.call(ctx, "postLikeCount", new(big.Int).SetUint64(postID))
	if err != nil {
		return 0, err
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int).Uint64(), nil
}

func (i *Impl) GetLikedPosts(ctx context.Context, user common.Address) ([]uint64, error) {
	out, err := i.call(ctx, "getLikedPosts", user)
	if err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)
	ids := make([]uint64, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, id.Uint64())
	}
	return ids, nil
}

// transact sends one state-changing call and waits until it is mined.
func (i *Impl) transact(ctx context.Context, method string, args ...interface{}) (string, error) {
	if i.key == nil {
		return "", wrap(method, errors.New("no signing key configured, gateway is read-only"))
	}
	opts, err := bind.NewKeyedTransactorWithChainID(i.key, i.chainID)
	if err != nil {
		return "", wrap(method, err)
	}
	opts.Context = ctx

	tx, err := i.post.Transact(opts, method, args...)
	if err != nil {
		return "", wrap(method, err)
	}
	i.logger.Info("Transaction sent", "method", method, "tx", tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, i.backend, tx)
	if err != nil {
		return "", wrap(method, err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return "", apperrors.WrapWithCode(wrap(method, errors.New("transaction reverted")), apperrors.CodeReverted, "transaction reverted")
	}

	i.logger.Info("Transaction mined", "method", method, "tx", tx.Hash().Hex(), "block", receipt.BlockNumber)
	return tx.Hash().Hex(), nil
}

func (i *Impl) CreatePost(ctx context.Context, contentHash string) (string, error) {
	return i.transact(ctx, "createPost", contentHash)
}

func (i *Impl) Follow(ctx context.Context, addr common.Address) (string, error) {
	return i.transact(ctx, "follow", addr)
}

func (i *Impl) Unfollow(ctx context.Context, addr common.Address) (string, error) {
	return i.transact(ctx, "unfollow", addr)
}

func (i *Impl) SetUsername(ctx context.Context, username string) (string, error) {
	return i.transact(ctx, "setUsername", username)
}

func (i *Impl) LatestBlock(ctx context.Context) (uint64, error) {
	n, err := i.backend.BlockNumber(ctx)
	if err != nil {
		return 0, wrap("blockNumber", err)
	}
	return n, nil
}

func (i *Impl) filter(ctx context.Context, contract common.Address, topic common.Hash, from, to uint64) ([]types.Log, error) {
	return i.backend.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{contract},
		Topics:    [][]common.Hash{{topic}},
	})
}

type usernameSet struct {
	User     common.Address
	Username string
}

// UsernameEvents returns UsernameSet logs in [from, to], in chain order.
func (i *Impl) UsernameEvents(ctx context.Context, from, to uint64) ([]domain.UsernameEvent, error) {
	logs, err := i.filter(ctx, i.postAddr, i.postABI.Events[eventUsernameSet].ID, from, to)
	if err != nil {
		return nil, wrap(eventUsernameSet, err)
	}

	events := make([]domain.UsernameEvent, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		var ev usernameSet
		if err := i.post.UnpackLog(&ev, eventUsernameSet, l); err != nil {
			i.logger.Warn("Skipping undecodable log", "event", eventUsernameSet, "tx", l.TxHash.Hex(), "error", err)
			continue
		}
		events = append(events, domain.UsernameEvent{
			Address:     domain.WalletKey(ev.User),
			Username:    ev.Username,
			BlockNumber: l.BlockNumber,
			TxHash:      l.TxHash.Hex(),
			LogIndex:    l.Index,
		})
	}
	return events, nil
}

type transfer struct {
	From  common.Address
	To    common.Address
	Value *big.Int
}

// TransferEvents returns token Transfer logs in [from, to]. Without a token contract it returns nothing.
func (i *Impl) TransferEvents(ctx context.Context, from, to uint64) ([]domain.Tip, error) {
	if i.token == nil {
		return nil, nil
	}
	logs, err := i.filter(ctx, i.tokenAddr, i.tokenABI.Events[eventTransfer].ID, from, to)
	if err != nil {
		return nil, wrap(eventTransfer, err)
	}

	tips := make([]domain.Tip, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		var ev transfer
		if err := i.token.UnpackLog(&ev, eventTransfer, l); err != nil {
			i.logger.Warn("Skipping undecodable log", "event", eventTransfer, "tx", l.TxHash.Hex(), "error", err)
			continue
		}
		tips = append(tips, domain.Tip{
			TxHash:      l.TxHash.Hex(),
			LogIndex:    l.Index,
			From:        domain.WalletKey(ev.From),
			To:          domain.WalletKey(ev.To),
			Amount:      ev.Value,
			BlockNumber: l.BlockNumber,
		})
	}
	return tips, nil
}
