// Package comments stores one encrypted envelope per comment under
// {root}/{wallet}/posts/{postId}/comments/{commentId}.json.
package comments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/internal/storage/fsx"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/orgball2608/ledgergram/pkg/logger"
)

const (
	commentsDir = "comments"
	ext         = ".json"
)

type Store struct {
	root      string
	serverKey []byte
	logger    logger.Logger
}

var _ blob.Cascader = (*Store)(nil)

func New(root string, serverKey crypto.ServerKey, log logger.Logger) *Store {
	return &Store{
		root:      root,
		serverKey: serverKey,
		logger:    log.WithComponent("CommentStore"),
	}
}

func (s *Store) postDir(author, postID string) (string, error) {
	w, err := domain.NormalizeWallet(author)
	if err != nil {
		return "", err
	}
	if _, err := strconv.ParseUint(postID, 10, 64); err != nil {
		return "", apperrors.Invalid("invalid post id %q", postID)
	}
	return filepath.Join(s.root, w, string(domain.CategoryPosts), postID), nil
}

func (s *Store) dir(author, postID string) (string, error) {
	d, err := s.postDir(author, postID)
	if err != nil {
		return "", err
	}
	return filepath.Join(d, commentsDir), nil
}

func validate(c *domain.Comment) error {
	a, err := domain.NormalizeWallet(c.Author)
	if err != nil {
		return err
	}
	c.Author = a
	if strings.TrimSpace(c.Text) == "" {
		return apperrors.Invalid("comment text is required")
	}
	if c.Timestamp <= 0 {
		return apperrors.Invalid("comment timestamp must be positive")
	}
	return nil
}

// Append encrypts c under mode and writes it as a new file. Ids are UUIDv7 so a
// lexical directory listing is chronological.
func (s *Store) Append(ctx context.Context, author, postID string, c domain.Comment, mode crypto.Mode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := s.dir(author, postID)
	if err != nil {
		return "", err
	}
	if err := validate(&c); err != nil {
		return "", err
	}

	plaintext, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal comment: %w", err)
	}
	env, err := blob.SealEnvelope(plaintext, mode.Key(s.serverKey))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt comment: %w", err)
	}
	env.Personal = mode.IsPersonal()

	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate comment id: %w", err)
	}
	if err := fsx.WriteFileAtomic(filepath.Join(dir, id.String()+ext), raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write comment: %w", err)
	}

	s.logger.Info("Comment stored", "author", author, "postID", postID, "commentID", id.String(), "mode", mode.String())
	return id.String(), nil
}

// List decrypts every comment of a post in creation order. Personal comments need
// personalKey; without it they are skipped. Any comment that fails to decrypt is
// skipped on its own and never fails the listing.
func (s *Store) List(ctx context.Context, author, postID string, personalKey []byte) ([]domain.Comment, error) {
	dir, err := s.dir(author, postID)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Comment{}, nil
		}
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	out := make([]domain.Comment, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if !e.Type().IsRegular() || fsx.IsHidden(name) || !strings.HasSuffix(name, ext) {
			continue
		}

		c, err := s.read(filepath.Join(dir, name), personalKey)
		if err != nil {
			if !apperrors.IsNotFound(err) {
				s.logger.Warn("Skipping unreadable comment", "file", name, "error", err)
			}
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// read returns ErrNotFound for a personal comment when no personal key is supplied.
func (s *Store) read(path string, personalKey []byte) (domain.Comment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Comment{}, err
	}
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.Comment{}, fmt.Errorf("%w: malformed envelope: %v", apperrors.ErrDecryption, err)
	}

	key := s.serverKey
	if env.Personal {
		if personalKey == nil {
			return domain.Comment{}, apperrors.ErrNotFound
		}
		key = personalKey
	}

	plaintext, err := blob.DecryptEnvelope(env, key)
	if err != nil {
		return domain.Comment{}, err
	}
	var c domain.Comment
	if err := json.Unmarshal(plaintext, &c); err != nil {
		return domain.Comment{}, fmt.Errorf("%w: malformed comment: %v", apperrors.ErrDecryption, err)
	}
	return c, nil
}

// Count is the number of comments visible without a personal key.
func (s *Store) Count(ctx context.Context, author, postID string) (int, error) {
	list, err := s.List(ctx, author, postID, nil)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// DeleteForPost drops the comment directory of postID; posts without an id have none.
func (s *Store) DeleteForPost(ctx context.Context, wallet, _, postID string) error {
	if postID == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	postDir, err := s.postDir(wallet, postID)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(postDir, commentsDir)); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	_ = os.Remove(postDir)

	s.logger.Info("Comments deleted", "wallet", wallet, "postID", postID)
	return nil
}
