// Package stories derives the story list from a scan of every wallet's stories directory.
package stories

import (
	"context"
	"sort"

	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
)

// Lister is the slice of the blob store the index reads.
type Lister interface {
	Wallets(ctx context.Context) ([]string, error)
	List(ctx context.Context, wallet string, category domain.Category) ([]blob.Entry, error)
}

type Index struct {
	blobs Lister
}

func New(blobs Lister) *Index {
	return &Index{blobs: blobs}
}

// Scan returns every story, newest first.
func (i *Index) Scan(ctx context.Context) ([]domain.Story, error) {
	return i.ScanSince(ctx, 0)
}

// ScanSince returns stories whose mtime in milliseconds is strictly after since.
func (i *Index) ScanSince(ctx context.Context, since int64) ([]domain.Story, error) {
	wallets, err := i.blobs.Wallets(ctx)
	if err != nil {
		return nil, err
	}

	out := []domain.Story{}
	for _, w := range wallets {
		entries, err := i.blobs.List(ctx, w, domain.CategoryStories)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			ts := e.ModTime.UnixMilli()
			if ts <= since {
				continue
			}
			out = append(out, domain.Story{
				ID:        domain.StoryID(w, e.Name),
				Address:   w,
				Filename:  e.Name,
				MediaURL:  domain.MediaURL(w, domain.CategoryStories, e.Name),
				Type:      domain.StoryTypeOf(e.Name),
				Timestamp: ts,
			})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Timestamp != out[b].Timestamp {
			return out[a].Timestamp > out[b].Timestamp
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}
