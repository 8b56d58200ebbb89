package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tayariapp/tayari/core"
	"github.com/tayariapp/tayari/core/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	conf := &core.Config{
		LocalStore: core.LocalStoreConfig{
			Path: filepath.Join(t.TempDir(), "nested", "drafts.db"),
		},
	}
	store, err := Open(conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_drafts(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	// missing draft
	_, err := store.GetDraft(ctx, "u1")
	assert.Equal(t, session.ErrDraftNotFound, errors.Cause(err))

	// save and read back
	sess := session.NewSession()
	sess.StudentInfo.Name = "Alex"
	sess.Documents[0].Checked = true
	require.NoError(t, store.SaveDraft(ctx, "u1", sess))

	got, err := store.GetDraft(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	// drafts are keyed per user
	_, err = store.GetDraft(ctx, "u2")
	assert.Equal(t, session.ErrDraftNotFound, errors.Cause(err))

	// overwrite
	sess.StudentInfo.Name = "Sam"
	require.NoError(t, store.SaveDraft(ctx, "u1", sess))
	got, err = store.GetDraft(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.StudentInfo.Name)

	// delete is idempotent
	require.NoError(t, store.DeleteDraft(ctx, "u1"))
	_, err = store.GetDraft(ctx, "u1")
	assert.Equal(t, session.ErrDraftNotFound, errors.Cause(err))
	require.NoError(t, store.DeleteDraft(ctx, "u1"))
}

func TestStore_survivesReopen(t *testing.T) {
	ctx := context.Background()
	conf := &core.Config{
		LocalStore: core.LocalStoreConfig{
			Path: filepath.Join(t.TempDir(), "drafts.db"),
		},
	}

	store, err := Open(conf)
	require.NoError(t, err)
	sess := session.NewSession()
	sess.StudentInfo.Name = "Alex"
	require.NoError(t, store.SaveDraft(ctx, "u1", sess))
	require.NoError(t, store.Close())

	store, err = Open(conf)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetDraft(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alex", got.StudentInfo.Name)
}
