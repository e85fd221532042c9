package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/ratelimit"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/internal/storage/comments"
	"github.com/orgball2608/ledgergram/internal/storage/kv"
	"github.com/orgball2608/ledgergram/internal/storage/likes"
	"github.com/orgball2608/ledgergram/internal/storage/profile"
	"github.com/orgball2608/ledgergram/internal/storage/stories"
	"github.com/orgball2608/ledgergram/internal/storage/views"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"github.com/stretchr/testify/require"
)

var (
	alice = "0x" + strings.Repeat("a", 40)
	bob   = "0x" + strings.Repeat("b", 40)

	serverKey = crypto.ServerKey("0123456789abcdef0123456789abcdef")
)

type stubFeed struct {
	items []domain.FeedItem
	posts []domain.Post
	err   error
	req   domain.FeedRequest
}

func (f *stubFeed) Build(_ context.Context, req domain.FeedRequest) ([]domain.FeedItem, error) {
	f.req = req
	return f.items, f.err
}

func (f *stubFeed) UserPosts(context.Context, common.Address, common.Address) ([]domain.FeedItem, error) {
	return f.items, f.err
}

func (f *stubFeed) Stories(context.Context, common.Address, int64) ([]domain.StoryGroup, error) {
	return []domain.StoryGroup{{Address: alice, Own: true}}, nil
}

func (f *stubFeed) Resurface(_ context.Context, _ common.Address, previous []string) ([]string, error) {
	return previous, nil
}

// FindPost mirrors the ledger lookup over posts.
func (f *stubFeed) FindPost(ctx context.Context, author common.Address, contentHash, postID string) (domain.Post, bool, error) {
	if postID != "" {
		p, err := f.PostByID(ctx, postID)
		if err != nil {
			return domain.Post{}, false, apperrors.Invalid("postId %s does not exist", postID)
		}
		if p.Author != author || p.ContentHash != contentHash {
			return domain.Post{}, false, apperrors.Invalid("postId %s does not belong to %s", postID, contentHash)
		}
		return p, true, nil
	}
	for _, p := range f.posts {
		if p.Author == author && p.ContentHash == contentHash {
			return p, true, nil
		}
	}
	return domain.Post{}, false, nil
}

func (f *stubFeed) PostByID(_ context.Context, postID string) (domain.Post, error) {
	for _, p := range f.posts {
		if p.Key() == postID {
			return p, nil
		}
	}
	return domain.Post{}, apperrors.ErrNotFound
}

type stubDirectory struct{}

func (stubDirectory) Directory(context.Context) ([]domain.DirectoryEntry, error) {
	return []domain.DirectoryEntry{{Address: alice, Username: "alice", PostCount: 2}}, nil
}

func (stubDirectory) TipSummary(_ context.Context, address string) (domain.TipSummary, error) {
	if _, err := domain.NormalizeWallet(address); err != nil {
		return domain.TipSummary{}, err
	}
	return domain.TipSummary{Address: address, Count: 1, TotalReceived: "1000"}, nil
}

type fixture struct {
	root   string
	feed   *stubFeed
	server *Server
}

func newFixture(t *testing.T, limiter ratelimit.Limiter) *fixture {
	t.Helper()
	root := t.TempDir()
	log := logger.Nop()

	db, err := kv.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	likeStore := likes.New(root, log)
	commentStore := comments.New(root, serverKey, log)
	blobs := blob.New(root, serverKey, log, likeStore, commentStore)

	f := &fixture{root: root, feed: &stubFeed{}}
	f.server = New(Deps{
		Blobs:     blobs,
		Likes:     likeStore,
		Comments:  commentStore,
		Profiles:  profile.New(root, serverKey, db, log),
		Stories:   stories.New(blobs),
		Views:     views.New(db, log),
		Feed:      f.feed,
		Directory: stubDirectory{},
		Limiter:   limiter,
		Logger:    log,
	})
	return f
}

func (f *fixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestUploadAndServeMedia(t *testing.T) {
	f := newFixture(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/upload?wallet="+strings.ToUpper(alice[2:3])+alice[3:]+"&type=posts", bytes.NewReader([]byte("png-bytes")))
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/upload?wallet="+alice+"&type=posts&filename=cat.png", bytes.NewReader([]byte("png-bytes")))
	req.Header.Set("X-Original-Name", "cat.png")
	rec = httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	up := decode[uploadResponse](t, rec)
	require.Equal(t, "cat.png", up.Filename)
	require.Equal(t, alice+"/posts/cat.png", up.Path)

	// Stored bytes are an envelope, not the plaintext.
	raw, err := os.ReadFile(filepath.Join(f.root, alice, "posts", "cat.png"))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "png-bytes")

	rec = f.do(t, http.MethodGet, "/api/media/"+alice+"/posts/cat.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, "png-bytes", rec.Body.String())

	rec = f.do(t, http.MethodHead, "/api/media/"+alice+"/posts/cat.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, rec.Body.Len())

	rec = f.do(t, http.MethodHead, "/api/media/"+alice+"/posts/dog.png", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/media/"+alice+"/posts/dog.png", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadMultipart(t *testing.T) {
	f := newFixture(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "clip.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("video"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload?wallet="+alice+"&type=stories", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	up := decode[uploadResponse](t, rec)
	require.True(t, strings.HasSuffix(up.Filename, ".mp4"))

	rec = f.do(t, http.MethodGet, "/api/stories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]domain.Story](t, rec)
	require.Len(t, list, 1)
	require.Equal(t, domain.MediaVideo, list[0].Type)
}

func TestCorruptMediaIsServerError(t *testing.T) {
	f := newFixture(t, nil)
	dir := filepath.Join(f.root, alice, "posts")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte(`{"iv":"00","data":"zz"}`), 0o644))

	rec := f.do(t, http.MethodGet, "/api/media/"+alice+"/posts/bad.png", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "failed to decrypt content")
}

func TestLikes(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/likes", map[string]string{
		"address": alice, "contentHash": "cat.png", "user": bob, "action": "like",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, likeResponse{Success: true, LikeState: domain.LikeState{Count: 1, LikedByUser: true}}, decode[likeResponse](t, rec))


	rec = f.do(t, http.MethodPost, "/api/likes", map[string]string{
		"address": alice, "contentHash": "cat.png", "user": bob, "action": "love",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/likes?address="+alice, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLikesByPostIDResolveContentHash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.feed.posts = []domain.Post{
		{ID: 3, Author: common.HexToAddress(alice), ContentHash: "cat.png"},
		{ID: 4, Author: common.HexToAddress(bob), ContentHash: "dog.png"},
	}

	rec := f.do(t, http.MethodPost, "/api/likes", map[string]string{
		"address": alice, "postId": "3", "user": bob, "action": "like",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// The like lands on the set the feed reads and the delete cascade removes.
	state, err := f.server.Likes.Read(ctx, alice, "cat.png", bob)
	require.NoError(t, err)
	require.Equal(t, domain.LikeState{Count: 1, LikedByUser: true}, state)
	_, err = os.Stat(filepath.Join(f.root, alice, "posts", "3"+blob.LikesSuffix))
	require.True(t, os.IsNotExist(err))

	rec = f.do(t, http.MethodGet, "/api/likes?address="+alice+"&postId=3&user="+bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.LikeState{Count: 1, LikedByUser: true}, decode[domain.LikeState](t, rec))

	// A post of another author.
	rec = f.do(t, http.MethodPost, "/api/likes", map[string]string{
		"address": alice, "postId": "4", "user": bob, "action": "like",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/likes?address="+alice+"&postId=99", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComments(t *testing.T) {
	f := newFixture(t, nil)
	key := crypto.PersonalKeyHex("correct horse", bob)

	rec := f.do(t, http.MethodPost, "/api/comments", map[string]any{
		"address": alice, "postId": "7", "author": bob, "text": "public", "timestamp": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/comments", map[string]any{
		"address": alice, "postId": "7", "author": bob, "text": "private", "timestamp": 2, "personalKey": key,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/comments?address="+alice+"&postId=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]domain.Comment](t, rec), 1)

	rec = f.do(t, http.MethodGet, "/api/comments?address="+alice+"&postId=7&personalKey="+key, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]domain.Comment](t, rec)
	require.Len(t, got, 2)
	require.Equal(t, "private", got[0].Text)

	rec = f.do(t, http.MethodGet, "/api/comments?address="+alice+"&postId=7&order=oldest&personalKey="+key, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public", decode[[]domain.Comment](t, rec)[0].Text)

	rec = f.do(t, http.MethodGet, "/api/comments?address="+alice+"&postId=7&personalKey=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/comments?address="+alice+"&postId=8", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]domain.Comment](t, rec))
}

func TestStoryViews(t *testing.T) {
	f := newFixture(t, nil)

	for i := 0; i < 2; i++ {
		rec := f.do(t, http.MethodPost, "/api/storyViews", map[string]string{"account": strings.ToUpper(bob), "storyId": "s1"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"s1"}, decode[viewResponse](t, rec).ViewedStories)
	}

	rec := f.do(t, http.MethodGet, "/api/storyViews?account="+bob, nil)
	require.Equal(t, []string{"s1"}, decode[[]string](t, rec))

	rec = f.do(t, http.MethodDelete, "/api/storyViews?account="+bob+"&storyId=s1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[viewResponse](t, rec).ViewedStories)

	rec = f.do(t, http.MethodGet, "/api/storyViews", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasswordFlow(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/setPassword?address="+alice, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/verifyPassword", map[string]string{"address": alice, "password": "whatever1"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/setPassword", map[string]string{"address": alice, "password": "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/setPassword", map[string]string{"address": alice, "password": "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/setPassword?address="+alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/verifyPassword", map[string]string{"address": alice, "password": "wrong horse"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/verifyPassword", map[string]string{"address": alice, "password": "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	require.Equal(t, crypto.PersonalKeyHex("correct horse", alice), body["personalKey"])
}

func TestSetUsernameConflict(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/setUsername", map[string]string{"address": alice, "username": "neo"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/setUsername", map[string]string{"address": bob, "username": "NEO"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/setUsername", map[string]string{"address": alice, "username": "neo"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/setUsername", map[string]string{"address": bob, "username": "a b"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePostCascades(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.feed.posts = []domain.Post{{ID: 3, Author: common.HexToAddress(alice), ContentHash: "cat.png"}}

	_, err := f.server.Blobs.Put(ctx, alice, domain.CategoryPosts, "cat.png", "cat.png", []byte("x"))
	require.NoError(t, err)
	_, err = f.server.Likes.Toggle(ctx, alice, "cat.png", bob, true)
	require.NoError(t, err)
	_, err = f.server.Comments.Append(ctx, alice, "3", domain.Comment{Author: bob, Text: "hi", Timestamp: 1}, crypto.ServerKeyMode())
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/deletePost", map[string]string{"address": alice, "contentHash": "cat.png", "postId": "3"})
	require.Equal(t, http.StatusOK, rec.Code)

	state, err := f.server.Likes.Read(ctx, alice, "cat.png", "")
	require.NoError(t, err)
	require.Zero(t, state.Count)
	n, err := f.server.Comments.Count(ctx, alice, "3")
	require.NoError(t, err)
	require.Zero(t, n)

	rec = f.do(t, http.MethodPost, "/api/deletePost", map[string]string{"address": alice, "contentHash": "cat.png", "postId": "3"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePostWithoutIDFindsComments(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.feed.posts = []domain.Post{{ID: 3, Author: common.HexToAddress(alice), ContentHash: "cat.png"}}

	_, err := f.server.Blobs.Put(ctx, alice, domain.CategoryPosts, "cat.png", "cat.png", []byte("x"))
	require.NoError(t, err)
	_, err = f.server.Comments.Append(ctx, alice, "3", domain.Comment{Author: bob, Text: "hi", Timestamp: 1}, crypto.ServerKeyMode())
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/deletePost", map[string]string{"address": alice, "contentHash": "cat.png"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "3", decode[map[string]any](t, rec)["postId"])

	n, err := f.server.Comments.Count(ctx, alice, "3")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestDeletePostRejectsForeignID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.feed.posts = []domain.Post{
		{ID: 3, Author: common.HexToAddress(alice), ContentHash: "cat.png"},
		{ID: 7, Author: common.HexToAddress(alice), ContentHash: "dog.png"},
	}

	for _, name := range []string{"cat.png", "dog.png"} {
		_, err := f.server.Blobs.Put(ctx, alice, domain.CategoryPosts, name, name, []byte("x"))
		require.NoError(t, err)
	}
	_, err := f.server.Comments.Append(ctx, alice, "7", domain.Comment{Author: bob, Text: "keep", Timestamp: 1}, crypto.ServerKeyMode())
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/deletePost", map[string]string{"address": alice, "contentHash": "cat.png", "postId": "7"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	n, err := f.server.Comments.Count(ctx, alice, "7")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	ok, err := f.server.Blobs.Exists(ctx, alice, domain.CategoryPosts, "cat.png")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDeletePostUnknownToLedger(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.server.Blobs.Put(ctx, alice, domain.CategoryPosts, "cat.png", "cat.png", []byte("x"))
	require.NoError(t, err)

	// No ledger post names the blob, so there are no comments to cascade to.
	rec := f.do(t, http.MethodPost, "/api/deletePost", map[string]string{"address": alice, "contentHash": "cat.png"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "", decode[map[string]any](t, rec)["postId"])
}

func TestProfileArtifactsAreNotMedia(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/setPassword", map[string]string{"address": alice, "password": "correct-horse-battery"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/setUsername", map[string]string{"address": alice, "username": "alice"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/media/"+alice+"/profile/password.json", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotContains(t, rec.Body.String(), "correct-horse-battery")

	rec = f.do(t, http.MethodHead, "/api/media/"+alice+"/profile/password.json", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/media/"+alice+"/profile/username.txt", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/upload?wallet="+alice+"&type=profile&filename=password.json", bytes.NewReader([]byte("attacker-pass")))
	rec = httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// The stored password is untouched.
	rec = f.do(t, http.MethodPost, "/api/verifyPassword", map[string]string{"address": alice, "password": "correct-horse-battery"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteStory(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodDelete, "/api/deleteStory", map[string]string{"address": alice, "filename": "s.png"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	_, err := f.server.Blobs.Put(context.Background(), alice, domain.CategoryStories, "s.png", "s.png", []byte("x"))
	require.NoError(t, err)

	rec = f.do(t, http.MethodDelete, "/api/deleteStory", map[string]string{"address": alice, "filename": "s.png"})
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = os.Stat(filepath.Join(f.root, alice))
	require.True(t, os.IsNotExist(err))
}

func TestFeedErrors(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/feed?mode=sideways", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/feed?viewer=nope", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	f.feed.err = apperrors.Validation(apperrors.CodeInvalidInput, "viewer is required for the following feed")
	rec = f.do(t, http.MethodGet, "/api/feed", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	f.feed.err = apperrors.ErrLedger
	rec = f.do(t, http.MethodGet, "/api/feed?mode=global&media=images", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, domain.FeedGlobal, f.feed.req.Mode)
	require.Equal(t, domain.FilterImages, f.feed.req.Media)
}

func TestFeedItems(t *testing.T) {
	f := newFixture(t, nil)
	f.feed.items = []domain.FeedItem{{ID: 4, Author: alice, ContentHash: "a.png", Timestamp: time.Unix(10, 0).UTC()}}

	rec := f.do(t, http.MethodGet, "/api/feed?viewer="+bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, f.feed.items, decode[[]domain.FeedItem](t, rec))
	require.Equal(t, common.HexToAddress(bob), f.feed.req.Viewer)

	rec = f.do(t, http.MethodGet, "/api/users/"+alice+"/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]domain.FeedItem](t, rec), 1)
}

func TestStoryGroupsAndResurface(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/stories?viewer="+alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]domain.StoryGroup](t, rec), 1)

	rec = f.do(t, http.MethodGet, "/api/stories?since=yesterday", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/stories/resurface", map[string]any{"viewer": alice, "previous": []string{"x"}})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDirectoryAndTips(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", decode[[]domain.DirectoryEntry](t, rec)[0].Username)

	rec = f.do(t, http.MethodGet, "/api/tips?address="+alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1000", decode[domain.TipSummary](t, rec).TotalReceived)

	rec = f.do(t, http.MethodGet, "/api/tips?address=0x12", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWritesAreRateLimited(t *testing.T) {
	f := newFixture(t, ratelimit.NewInMemoryLimiter(1, time.Hour, 1))

	body := map[string]string{"address": alice, "contentHash": "cat.png", "user": bob, "action": "like"}
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/likes", body).Code)
	require.Equal(t, http.StatusTooManyRequests, f.do(t, http.MethodPost, "/api/likes", body).Code)

	// Reads are not limited.
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/likes?address="+alice+"&contentHash=cat.png", nil).Code)
}

func TestMalformedJSON(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/setUsername", []byte("{"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/setUsername", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
