// Package blob persists encrypted media envelopes at {root}/{wallet}/{category}/{filename}.
package blob

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/storage/fsx"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"github.com/rs/xid"
)

// LikesSuffix marks the plain-JSON like set stored next to a post blob.
const LikesSuffix = ".likes.json"

// Cascader removes secondary artifacts of a deleted post.
type Cascader interface {
	DeleteForPost(ctx context.Context, wallet, contentHash, postID string) error
}

// Entry is a stored blob as seen by a directory scan.
type Entry struct {
	Name    string
	ModTime time.Time
}

type Store struct {
	root      string
	serverKey []byte
	cascaders []Cascader
	logger    logger.Logger
	now       func() time.Time
}

func New(root string, serverKey crypto.ServerKey, log logger.Logger, cascaders ...Cascader) *Store {
	return &Store{
		root:      root,
		serverKey: serverKey,
		cascaders: cascaders,
		logger:    log.WithComponent("BlobStore"),
		now:       time.Now,
	}
}

func (s *Store) Root() string {
	return s.root
}

// WalletDir returns the directory holding every artifact of a wallet.
func (s *Store) WalletDir(wallet string) (string, error) {
	w, err := domain.NormalizeWallet(wallet)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, w), nil
}

func (s *Store) path(wallet string, category domain.Category, filename string) (string, error) {
	if !category.Valid() {
		return "", apperrors.Invalid("invalid category %q", category)
	}
	if err := fsx.ValidateFilename(filename); err != nil {
		return "", err
	}
	dir, err := s.WalletDir(wallet)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, string(category), filename), nil
}

// Put encrypts plaintext under the server key and stores it. A non-empty hint is used
// verbatim as the filename, which lets a ledger contentHash double as the storage name.
func (s *Store) Put(ctx context.Context, wallet string, category domain.Category, filenameHint, originalName string, plaintext []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filename := filenameHint
	if filename == "" {
		filename = s.generateName(originalName)
	}
	if domain.IsReservedProfileFile(category, filename) {
		return "", apperrors.Invalid("filename %q is reserved", filename)
	}
	path, err := s.path(wallet, category, filename)
	if err != nil {
		return "", err
	}
	w, _ := domain.NormalizeWallet(wallet)

	env, err := SealEnvelope(plaintext, s.serverKey)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt blob: %w", err)
	}

	if originalName == "" {
		originalName = filename
	}
	env.OriginalName = filepath.Base(originalName)
	env.UploadTime = s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
	env.Wallet = w
	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if err := fsx.WriteFileAtomic(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	s.logger.Info("Blob stored", "wallet", w, "category", category, "filename", filename, "bytes", len(plaintext))
	return filename, nil
}

// generateName builds {unixMillis}-{xid}{ext}; the extension defaults to .dat.
func (s *Store) generateName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".dat"
	}
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + xid.New().String() + ext
}

// Get reads and decrypts a blob. Profile artifacts reserved by the profile store read as missing.
func (s *Store) Get(ctx context.Context, wallet string, category domain.Category, filename string) (domain.Media, error) {
	if err := ctx.Err(); err != nil {
		return domain.Media{}, err
	}
	if domain.IsReservedProfileFile(category, filename) {
		return domain.Media{}, fmt.Errorf("blob %s/%s: %w", category, filename, apperrors.ErrNotFound)
	}
	path, err := s.path(wallet, category, filename)
	if err != nil {
		return domain.Media{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Media{}, fmt.Errorf("blob %s/%s: %w", category, filename, apperrors.ErrNotFound)
		}
		return domain.Media{}, fmt.Errorf("failed to read blob: %w", err)
	}

	env, plaintext, err := OpenEnvelope(raw, s.serverKey)
	if err != nil {
		s.logger.Error("Failed to decrypt blob", "path", path, "error", err)
		return domain.Media{}, err
	}

	return domain.Media{
		Data:        plaintext,
		ContentType: domain.ContentType(filename),
		Envelope:    env,
	}, nil
}

// OpenEnvelope parses and decrypts a raw envelope with key. Malformed JSON or hex is
// reported as ErrDecryption: the bytes on disk are corrupt.
func OpenEnvelope(raw []byte, key []byte) (domain.Envelope, []byte, error) {
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, nil, fmt.Errorf("%w: malformed envelope: %v", apperrors.ErrDecryption, err)
	}
	plaintext, err := DecryptEnvelope(env, key)
	if err != nil {
		return env, nil, err
	}
	return env, plaintext, nil
}

// DecryptEnvelope decodes the hex fields of env and decrypts them with key.
func DecryptEnvelope(env domain.Envelope, key []byte) ([]byte, error) {
	iv, err := hex.DecodeString(env.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed iv: %v", apperrors.ErrDecryption, err)
	}
	data, err := hex.DecodeString(env.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed data: %v", apperrors.ErrDecryption, err)
	}
	return crypto.Decrypt(iv, data, key)
}

// SealEnvelope encrypts plaintext with key into an envelope carrying only iv and data.
func SealEnvelope(plaintext, key []byte) (domain.Envelope, error) {
	sealed, err := crypto.Encrypt(plaintext, key)
	if err != nil {
		return domain.Envelope{}, err
	}
	return domain.Envelope{
		IV:   hex.EncodeToString(sealed.IV),
		Data: hex.EncodeToString(sealed.Ciphertext),
	}, nil
}

// Exists is a stat-only probe; it never decrypts.
func (s *Store) Exists(ctx context.Context, wallet string, category domain.Category, filename string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if domain.IsReservedProfileFile(category, filename) {
		return false, nil
	}
	path, err := s.path(wallet, category, filename)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat blob: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// Delete removes a blob. Deleting a blob that never existed is ErrNotFound.
// Emptied stories and wallet directories are pruned.
func (s *Store) Delete(ctx context.Context, wallet string, category domain.Category, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if domain.IsReservedProfileFile(category, filename) {
		return fmt.Errorf("blob %s/%s: %w", category, filename, apperrors.ErrNotFound)
	}
	path, err := s.path(wallet, category, filename)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("blob %s/%s: %w", category, filename, apperrors.ErrNotFound)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	if category == domain.CategoryStories {
		// os.Remove refuses non-empty directories, which is exactly the pruning rule.
		categoryDir := filepath.Dir(path)
		_ = os.Remove(categoryDir)
		_ = os.Remove(filepath.Dir(categoryDir))
	}

	s.logger.Info("Blob deleted", "path", path)
	return nil
}

// DeletePost removes a post blob, then cascades to its likes and comments.
// Cascade failures are logged and never roll back the primary delete.
func (s *Store) DeletePost(ctx context.Context, wallet, contentHash, postID string) error {
	if err := s.Delete(ctx, wallet, domain.CategoryPosts, contentHash); err != nil {
		return err
	}
	w, _ := domain.NormalizeWallet(wallet)

	for _, c := range s.cascaders {
		if err := c.DeleteForPost(ctx, w, contentHash, postID); err != nil {
			s.logger.Warn("Cascade delete failed, leaving orphaned artifacts",
				"wallet", w, "contentHash", contentHash, "postID", postID, "error", err)
		}
	}
	return nil
}

// Wallets lists the wallet directories under the root.
func (s *Store) Wallets(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read media root: %w", err)
	}

	var wallets []string
	for _, e := range entries {
		if !e.IsDir() || fsx.IsHidden(e.Name()) {
			continue
		}
		w, err := domain.NormalizeWallet(e.Name())
		if err != nil {
			s.logger.Debug("Skipping non-wallet directory", "name", e.Name())
			continue
		}
		wallets = append(wallets, w)
	}
	sort.Strings(wallets)
	return wallets, nil
}

// List returns the blobs of one category, skipping like sets, comment directories,
// reserved profile artifacts and temp files.
func (s *Store) List(ctx context.Context, wallet string, category domain.Category) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, apperrors.Invalid("invalid category %q", category)
	}
	dir, err := s.WalletDir(wallet)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(dir, string(category)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", category, err)
	}

	var out []Entry
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || fsx.IsHidden(name) || strings.HasSuffix(name, LikesSuffix) ||
			domain.IsReservedProfileFile(category, name) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{Name: name, ModTime: info.ModTime()})
	}
	return out, nil
}
