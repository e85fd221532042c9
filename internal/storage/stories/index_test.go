package stories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	bob   = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func putStory(t *testing.T, s *blob.Store, wallet, name string, mtime time.Time) {
	t.Helper()
	_, err := s.Put(context.Background(), wallet, domain.CategoryStories, name, "", []byte("x"))
	require.NoError(t, err)
	path := filepath.Join(s.Root(), wallet, "stories", name)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestScanOrdersNewestFirst(t *testing.T) {
	store := blob.New(t.TempDir(), crypto.ServerKey("0123456789abcdef0123456789abcdef"), logger.Nop())
	base := time.UnixMilli(1_700_000_000_000)

	putStory(t, store, alice, "a.png", base)
	putStory(t, store, bob, "b.mp4", base.Add(2*time.Second))
	putStory(t, store, alice, "c.jpg", base.Add(time.Second))

	// Posts never show up as stories.
	_, err := store.Put(context.Background(), alice, domain.CategoryPosts, "p.png", "", []byte("x"))
	require.NoError(t, err)

	idx := New(store)
	all, err := idx.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	require.Equal(t, bob+"-b.mp4", all[0].ID)
	require.Equal(t, domain.MediaVideo, all[0].Type)
	require.Equal(t, "/api/media/"+bob+"/stories/b.mp4", all[0].MediaURL)
	require.Equal(t, alice+"-c.jpg", all[1].ID)
	require.Equal(t, domain.MediaImage, all[1].Type)
	require.Equal(t, alice+"-a.png", all[2].ID)

	since, err := idx.ScanSince(context.Background(), base.Add(time.Second).UnixMilli())
	require.NoError(t, err)
	require.Len(t, since, 1)
	require.Equal(t, bob+"-b.mp4", since[0].ID)
}

func TestScanEmptyRoot(t *testing.T) {
	store := blob.New(t.TempDir(), crypto.ServerKey("0123456789abcdef0123456789abcdef"), logger.Nop())

	all, err := New(store).Scan(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}
