// Package likes keeps the off-chain like set of each post as a plain JSON array of addresses.
package likes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/internal/storage/fsx"
	"github.com/orgball2608/ledgergram/pkg/logger"
)

type Store struct {
	root   string
	locks  *fsx.KeyedMutex
	logger logger.Logger
}

var _ blob.Cascader = (*Store)(nil)

func New(root string, log logger.Logger) *Store {
	return &Store{
		root:   root,
		locks:  fsx.NewKeyedMutex(),
		logger: log.WithComponent("LikeStore"),
	}
}

func (s *Store) path(author, contentHash string) (string, error) {
	w, err := domain.NormalizeWallet(author)
	if err != nil {
		return "", err
	}
	if err := fsx.ValidateFilename(contentHash); err != nil {
		return "", err
	}
	return filepath.Join(s.root, w, string(domain.CategoryPosts), contentHash+blob.LikesSuffix), nil
}

// load returns the stored addresses. A missing file is an empty set; so is a file that
// does not parse, which is logged and overwritten on the next toggle.
func (s *Store) load(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read likes: %w", err)
	}

	var addrs []string
	if err := json.Unmarshal(raw, &addrs); err != nil {
		s.logger.Warn("Unparseable likes file, treating as empty", "path", path, "error", err)
		return nil, nil
	}
	return addrs, nil
}

func state(addrs []string, user string) domain.LikeState {
	st := domain.LikeState{Count: len(addrs)}
	for _, a := range addrs {
		if a == user {
			st.LikedByUser = true
			break
		}
	}
	return st
}

// Read returns the like count and whether user is in the set. An empty user reads the count only.
func (s *Store) Read(ctx context.Context, author, contentHash, user string) (domain.LikeState, error) {
	if err := ctx.Err(); err != nil {
		return domain.LikeState{}, err
	}
	path, err := s.path(author, contentHash)
	if err != nil {
		return domain.LikeState{}, err
	}

	var u string
	if user != "" {
		if u, err = domain.NormalizeWallet(user); err != nil {
			return domain.LikeState{}, err
		}
	}

	addrs, err := s.load(path)
	if err != nil {
		return domain.LikeState{}, err
	}
	return state(addrs, u), nil
}

// Likers returns the addresses in the set, in the order they liked.
func (s *Store) Likers(ctx context.Context, author, contentHash string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(author, contentHash)
	if err != nil {
		return nil, err
	}
	return s.load(path)
}

// Toggle adds (like) or removes (!like) user. Both directions are idempotent and the
// read-modify-write is serialized per post.
func (s *Store) Toggle(ctx context.Context, author, contentHash, user string, like bool) (domain.LikeState, error) {
	if err := ctx.Err(); err != nil {
		return domain.LikeState{}, err
	}
	path, err := s.path(author, contentHash)
	if err != nil {
		return domain.LikeState{}, err
	}
	u, err := domain.NormalizeWallet(user)
	if err != nil {
		return domain.LikeState{}, err
	}

	unlock := s.locks.Lock(path)
	defer unlock()

	addrs, err := s.load(path)
	if err != nil {
		return domain.LikeState{}, err
	}

	next := make([]string, 0, len(addrs)+1)
	present := false
	for _, a := range addrs {
		if a == u {
			present = true
			if !like {
				continue
			}
		}
		next = append(next, a)
	}
	if like && !present {
		next = append(next, u)
	}

	if like == present {
		return state(next, u), nil
	}

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("failed to marshal likes: %w", err)
	}
	if err := fsx.WriteFileAtomic(path, raw, 0o644); err != nil {
		return domain.LikeState{}, fmt.Errorf("failed to write likes: %w", err)
	}

	s.logger.Debug("Like toggled", "path", path, "user", u, "like", like, "count", len(next))
	return state(next, u), nil
}

// DeleteForPost removes the like set of a deleted post. A missing file is not an error.
func (s *Store) DeleteForPost(ctx context.Context, wallet, contentHash, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(wallet, contentHash)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(path)
	defer unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete likes: %w", err)
	}
	return nil
}
