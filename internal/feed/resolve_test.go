package feed

import (
	"context"
	"testing"

	"github.com/orgball2608/ledgergram/internal/domain"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFindPostScansLedgerWithoutID(t *testing.T) {
	f := newFixture(t)
	f.withPosts(post(1, other, "dog.png"), post(2, viewer, "cat.png"), post(3, viewer, "dog.png"))

	p, found, err := f.builder.FindPost(context.Background(), viewer, "dog.png", "")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(3), p.ID)
}

func TestFindPostUnknownBlob(t *testing.T) {
	f := newFixture(t)
	f.withPosts(post(1, other, "dog.png"))

	_, found, err := f.builder.FindPost(context.Background(), viewer, "dog.png", "")
	require.NoError(t, err)
	require.False(t, found)
}

func TestFindPostChecksClaimedID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ledger.EXPECT().Post(gomock.Any(), uint64(7)).Return(post(7, viewer, "dog.png"), nil).AnyTimes()
	f.ledger.EXPECT().Post(gomock.Any(), uint64(9)).Return(domain.Post{ID: 9}, nil)

	p, found, err := f.builder.FindPost(ctx, viewer, "dog.png", "7")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(7), p.ID)

	// Another post of the same author.
	_, _, err = f.builder.FindPost(ctx, viewer, "cat.png", "7")
	require.True(t, apperrors.IsValidation(err))

	// Same blob name under another author.
	_, _, err = f.builder.FindPost(ctx, other, "dog.png", "7")
	require.True(t, apperrors.IsValidation(err))

	_, _, err = f.builder.FindPost(ctx, viewer, "dog.png", "9")
	require.True(t, apperrors.IsValidation(err))

	_, _, err = f.builder.FindPost(ctx, viewer, "dog.png", "seven")
	require.True(t, apperrors.IsValidation(err))
}

func TestPostByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.ledger.EXPECT().Post(gomock.Any(), uint64(3)).Return(post(3, viewer, "cat.png"), nil)
	f.ledger.EXPECT().Post(gomock.Any(), uint64(4)).Return(domain.Post{ID: 4}, nil)
	f.ledger.EXPECT().Post(gomock.Any(), uint64(5)).Return(domain.Post{}, apperrors.ErrLedger)

	p, err := f.builder.PostByID(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, "cat.png", p.ContentHash)

	_, err = f.builder.PostByID(ctx, "4")
	require.True(t, apperrors.IsNotFound(err))

	_, err = f.builder.PostByID(ctx, "5")
	require.True(t, apperrors.IsLedger(err))

	_, err = f.builder.PostByID(ctx, "0")
	require.True(t, apperrors.IsValidation(err))
}
