package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestOpenCreatesBuckets(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	defer db.Close()

	err = db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{BucketViews, BucketUsernames, BucketUsernameOwners, BucketMeta} {
			require.NotNil(t, tx.Bucket(b), string(b))
		}
		return nil
	})
	require.NoError(t, err)
}
