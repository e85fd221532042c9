package comments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/internal/domain"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"github.com/stretchr/testify/require"
)

const (
	author    = "0x1111111111111111111111111111111111111111"
	commenter = "0x2222222222222222222222222222222222222222"
)

var serverKey = crypto.ServerKey("0123456789abcdef0123456789abcdef")

func comment(text string, ts int64) domain.Comment {
	return domain.Comment{Author: commenter, Text: text, Timestamp: ts}
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir(), serverKey, logger.Nop())

	_, err := s.Append(ctx, author, "7", comment("first", 1), crypto.ServerKeyMode())
	require.NoError(t, err)
	_, err = s.Append(ctx, author, "7", comment("second", 2), crypto.ServerKeyMode())
	require.NoError(t, err)

	list, err := s.List(ctx, author, "7", nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "first", list[0].Text)
	require.Equal(t, "second", list[1].Text)

	domain.SortCommentsNewestFirst(list)
	require.Equal(t, "second", list[0].Text)

	n, err := s.Count(ctx, author, "7")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestListMissingIsEmpty(t *testing.T) {
	s := New(t.TempDir(), serverKey, logger.Nop())

	list, err := s.List(context.Background(), author, "99", nil)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestPartialDecrypt(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir(), serverKey, logger.Nop())

	keyA := crypto.DerivePersonalKey("password-a", commenter)
	keyB := crypto.DerivePersonalKey("password-b", commenter)

	_, err := s.Append(ctx, author, "1", comment("c1", 1), crypto.ServerKeyMode())
	require.NoError(t, err)
	_, err = s.Append(ctx, author, "1", comment("c2", 2), crypto.PersonalKeyMode(keyA))
	require.NoError(t, err)
	_, err = s.Append(ctx, author, "1", comment("c3", 3), crypto.ServerKeyMode())
	require.NoError(t, err)

	// Without a personal key the personal comment is skipped.
	list, err := s.List(ctx, author, "1", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c3"}, texts(list))

	list, err = s.List(ctx, author, "1", keyA)
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c2", "c3"}, texts(list))

	// A wrong personal key never fails the listing and never leaks c2.
	list, err = s.List(ctx, author, "1", keyB)
	require.NoError(t, err)
	require.Contains(t, texts(list), "c1")
	require.Contains(t, texts(list), "c3")
	require.NotContains(t, texts(list), "c2")
}

func TestCorruptFileIsSkipped(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := New(root, serverKey, logger.Nop())

	_, err := s.Append(ctx, author, "3", comment("ok", 1), crypto.ServerKeyMode())
	require.NoError(t, err)
	bad := filepath.Join(root, author, "posts", "3", "comments", "zzz.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"iv":"00","data":"zz"}`), 0o644))

	list, err := s.List(ctx, author, "3", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"ok"}, texts(list))
}

func TestAppendValidates(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir(), serverKey, logger.Nop())

	_, err := s.Append(ctx, author, "1", domain.Comment{Author: "nobody", Text: "x", Timestamp: 1}, crypto.ServerKeyMode())
	require.True(t, apperrors.IsValidation(err))

	_, err = s.Append(ctx, author, "1", comment("   ", 1), crypto.ServerKeyMode())
	require.True(t, apperrors.IsValidation(err))

	_, err = s.Append(ctx, author, "1", comment("x", 0), crypto.ServerKeyMode())
	require.True(t, apperrors.IsValidation(err))

	_, err = s.Append(ctx, author, "../1", comment("x", 1), crypto.ServerKeyMode())
	require.True(t, apperrors.IsValidation(err))
}

func TestDeleteForPost(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := New(root, serverKey, logger.Nop())

	_, err := s.Append(ctx, author, "5", comment("bye", time.Now().UnixMilli()), crypto.ServerKeyMode())
	require.NoError(t, err)

	require.NoError(t, s.DeleteForPost(ctx, author, "p.png", "5"))
	require.NoError(t, s.DeleteForPost(ctx, author, "p.png", ""))

	n, err := s.Count(ctx, author, "5")
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = os.Stat(filepath.Join(root, author, "posts", "5"))
	require.True(t, os.IsNotExist(err))
}

func texts(list []domain.Comment) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Text)
	}
	return out
}
