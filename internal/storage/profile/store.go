// Package profile keeps per-wallet profile artifacts: the server-encrypted password and
// the username, with a case-insensitive username index in the state db.
package profile

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/internal/storage/fsx"
	"github.com/orgball2608/ledgergram/internal/storage/kv"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"go.etcd.io/bbolt"
)

const (
	passwordFile = domain.PasswordFile
	usernameFile = domain.UsernameFile

	MinPasswordLen = 8
	MinUsernameLen = 3
	MaxUsernameLen = 20
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type Store struct {
	root      string
	serverKey []byte
	db        *bbolt.DB
	logger    logger.Logger
}

func New(root string, serverKey crypto.ServerKey, db *bbolt.DB, log logger.Logger) *Store {
	return &Store{
		root:      root,
		serverKey: serverKey,
		db:        db,
		logger:    log.WithComponent("ProfileStore"),
	}
}

func (s *Store) file(address, name string) (string, string, error) {
	w, err := domain.NormalizeWallet(address)
	if err != nil {
		return "", "", err
	}
	return filepath.Join(s.root, w, string(domain.CategoryProfile), name), w, nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return apperrors.Invalid("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

func ValidateUsername(username string) error {
	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		return apperrors.Invalid("username must be between %d and %d characters", MinUsernameLen, MaxUsernameLen)
	}
	if !usernamePattern.MatchString(username) {
		return apperrors.Invalid("username can only contain letters, numbers, and underscores")
	}
	return nil
}

// SetPassword stores the password encrypted under the server key, replacing any previous one.
func (s *Store) SetPassword(ctx context.Context, address, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, w, err := s.file(address, passwordFile)
	if err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	env, err := blob.SealEnvelope([]byte(password), s.serverKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt password: %w", err)
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal password: %w", err)
	}
	if err := fsx.WriteFileAtomic(path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write password: %w", err)
	}

	s.logger.Info("Password set", "address", w)
	return nil
}

func (s *Store) storedPassword(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no password set: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	_, plaintext, err := blob.OpenEnvelope(raw, s.serverKey)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

// HasPassword reports whether a readable password is stored for address.
func (s *Store) HasPassword(ctx context.Context, address string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, _, err := s.file(address, passwordFile)
	if err != nil {
		return false, err
	}
	if _, err := s.storedPassword(path); err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// VerifyPassword checks password against the stored one and returns the hex personal key.
func (s *Store) VerifyPassword(ctx context.Context, address, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, w, err := s.file(address, passwordFile)
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", apperrors.Invalid("password is required")
	}

	stored, err := s.storedPassword(path)
	if err != nil {
		return "", err
	}
	if subtle.ConstantTimeCompare(stored, []byte(password)) != 1 {
		s.logger.Warn("Password mismatch", "address", w)
		return "", fmt.Errorf("invalid password: %w", apperrors.ErrUnauthorized)
	}

	return crypto.PersonalKeyHex(password, w), nil
}

// SetUsername claims username for address. Names are unique ignoring case; re-claiming
// one's own name succeeds, and renaming releases the previous name.
func (s *Store) SetUsername(ctx context.Context, address, username string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, w, err := s.file(address, usernameFile)
	if err != nil {
		return "", err
	}
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return "", err
	}

	// The file is written inside the transaction so a failed write rolls the claim back.
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := claim(tx, w, username); err != nil {
			return err
		}
		if err := fsx.WriteFileAtomic(path, []byte(username), 0o644); err != nil {
			return fmt.Errorf("failed to write username: %w", err)
		}
		return nil
	}); err != nil {
		return "", err
	}

	s.logger.Info("Username set", "address", w, "username", username)
	return username, nil
}

func claim(tx *bbolt.Tx, wallet, username string) error {
	names := tx.Bucket(kv.BucketUsernames)
	owners := tx.Bucket(kv.BucketUsernameOwners)

	lower := []byte(strings.ToLower(username))
	if owner := names.Get(lower); owner != nil && string(owner) != wallet {
		return apperrors.Validation(apperrors.CodeUsernameTaken, "username already taken")
	}

	if prev := owners.Get([]byte(wallet)); prev != nil {
		if prevLower := bytes.ToLower(prev); !bytes.Equal(prevLower, lower) {
			if err := names.Delete(prevLower); err != nil {
				return err
			}
		}
	}
	if err := names.Put(lower, []byte(wallet)); err != nil {
		return err
	}
	return owners.Put([]byte(wallet), []byte(username))
}

// Username returns the stored name for address, or ErrNotFound.
func (s *Store) Username(ctx context.Context, address string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, w, err := s.file(address, usernameFile)
	if err != nil {
		return "", err
	}

	var name string
	_ = s.db.View(func(tx *bbolt.Tx) error {
		name = string(tx.Bucket(kv.BucketUsernameOwners).Get([]byte(w)))
		return nil
	})
	if name != "" {
		return name, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("username for %s: %w", w, apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	name = strings.TrimSpace(string(raw))
	if name == "" {
		return "", fmt.Errorf("username for %s: %w", w, apperrors.ErrNotFound)
	}
	return name, nil
}

// RebuildIndex indexes every username.txt under the media root that the index does not
// know yet. When two wallets hold the same name the first one indexed keeps it.
func (s *Store) RebuildIndex(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read media root: %w", err)
	}

	indexed := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		if !e.IsDir() {
			continue
		}
		w, err := domain.NormalizeWallet(e.Name())
		if err != nil {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.root, e.Name(), string(domain.CategoryProfile), usernameFile))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(raw))
		if ValidateUsername(name) != nil {
			s.logger.Warn("Skipping invalid stored username", "address", w, "username", name)
			continue
		}

		err = s.db.Update(func(tx *bbolt.Tx) error {
			if tx.Bucket(kv.BucketUsernameOwners).Get([]byte(w)) != nil {
				return nil
			}
			if err := claim(tx, w, name); err != nil {
				return err
			}
			indexed++
			return nil
		})
		if err != nil {
			s.logger.Warn("Username conflict while rebuilding index", "address", w, "username", name, "error", err)
		}
	}

	if indexed > 0 {
		s.logger.Info("Username index rebuilt", "indexed", indexed)
	}
	return indexed, nil
}
