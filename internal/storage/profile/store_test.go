package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/internal/storage/kv"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	bob   = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func newStore(t *testing.T, root string) *Store {
	t.Helper()
	db, err := kv.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(root, crypto.ServerKey("0123456789abcdef0123456789abcdef"), db, logger.Nop())
}

func TestPasswordLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, t.TempDir())

	has, err := s.HasPassword(ctx, alice)
	require.NoError(t, err)
	require.False(t, has)

	_, err = s.VerifyPassword(ctx, alice, "whatever1")
	require.True(t, apperrors.IsNotFound(err))

	require.True(t, apperrors.IsValidation(s.SetPassword(ctx, alice, "short")))
	require.NoError(t, s.SetPassword(ctx, alice, "correct horse"))

	has, err = s.HasPassword(ctx, alice)
	require.NoError(t, err)
	require.True(t, has)

	_, err = s.VerifyPassword(ctx, alice, "wrong horse")
	require.True(t, apperrors.IsUnauthorized(err))

	key, err := s.VerifyPassword(ctx, alice, "correct horse")
	require.NoError(t, err)
	require.Equal(t, crypto.PersonalKeyHex("correct horse", alice), key)
	require.Len(t, key, 64)
}

func TestUsernameUniqueness(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, t.TempDir())

	name, err := s.SetUsername(ctx, alice, " Alice_1 ")
	require.NoError(t, err)
	require.Equal(t, "Alice_1", name)

	// Same owner is a no-op success.
	_, err = s.SetUsername(ctx, alice, "alice_1")
	require.NoError(t, err)

	_, err = s.SetUsername(ctx, bob, "ALICE_1")
	require.True(t, apperrors.IsValidation(err))
	require.Equal(t, apperrors.CodeUsernameTaken, apperrors.GetCode(err))

	// Renaming releases the old name.
	_, err = s.SetUsername(ctx, alice, "wonderland")
	require.NoError(t, err)
	_, err = s.SetUsername(ctx, bob, "alice_1")
	require.NoError(t, err)

	got, err := s.Username(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, "wonderland", got)
}

func TestUsernameWriteFailureReleasesClaim(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := newStore(t, root)

	_, err := s.SetUsername(ctx, alice, "neo")
	require.NoError(t, err)

	// A regular file where the profile directory belongs makes every write fail.
	profileDir := filepath.Join(root, alice, "profile")
	require.NoError(t, os.RemoveAll(profileDir))
	require.NoError(t, os.WriteFile(profileDir, []byte("x"), 0o644))

	_, err = s.SetUsername(ctx, alice, "trinity")
	require.Error(t, err)
	require.False(t, apperrors.IsValidation(err))

	got, err := s.Username(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, "neo", got)

	_, err = s.SetUsername(ctx, bob, "trinity")
	require.NoError(t, err)
	_, err = s.SetUsername(ctx, bob, "NEO")
	require.Equal(t, apperrors.CodeUsernameTaken, apperrors.GetCode(err))
}

func TestUsernameValidation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, t.TempDir())

	for _, bad := range []string{"ab", "this_name_is_far_too_long", "has space", "dash-name"} {
		_, err := s.SetUsername(ctx, alice, bad)
		require.True(t, apperrors.IsValidation(err), bad)
	}
}

func TestUsernameMissing(t *testing.T) {
	_, err := newStore(t, t.TempDir()).Username(context.Background(), alice)
	require.True(t, apperrors.IsNotFound(err))
}

func TestRebuildIndexFromFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	for wallet, name := range map[string]string{alice: "carol", bob: "dave"} {
		path := filepath.Join(root, wallet, "profile", "username.txt")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(name+"\n"), 0o644))
	}

	s := newStore(t, root)
	n, err := s.RebuildIndex(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = s.SetUsername(ctx, alice, "DAVE")
	require.Equal(t, apperrors.CodeUsernameTaken, apperrors.GetCode(err))

	n, err = s.RebuildIndex(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}
