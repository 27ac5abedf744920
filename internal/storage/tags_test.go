package storage

import (
	"context"
	"testing"

	"github.com/lzy117/accountint-app/internal/common"
	"github.com/lzy117/accountint-app/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTag(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	id, err := store.SaveRecord(ctx, testRecord(model.TypeExpense, 10, "2025-01-01", ""))
	require.NoError(t, err)

	tag, err := store.AddTag(ctx, id, "work")
	require.NoError(t, err)
	assert.Equal(t, "work", tag.Name)
	assert.NotEmpty(t, tag.ID)

	// Same name again reuses the tag row and the link.
	again, err := store.AddTag(ctx, id, "work")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, again.ID)

	rec, err := store.GetRecordByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, rec.Tags, 1)
	assert.Equal(t, "work", rec.Tags[0].Name)
}

func TestAddTag_SharedAcrossRecords(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first, err := store.SaveRecord(ctx, testRecord(model.TypeExpense, 10, "2025-01-01", ""))
	require.NoError(t, err)
	second, err := store.SaveRecord(ctx, testRecord(model.TypeExpense, 20, "2025-01-02", ""))
	require.NoError(t, err)

	tag1, err := store.AddTag(ctx, first, "travel")
	require.NoError(t, err)
	tag2, err := store.AddTag(ctx, second, "travel")
	require.NoError(t, err)

	// One tag row, two links.
	assert.Equal(t, tag1.ID, tag2.ID)
}

func TestRemoveTag(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	id, err := store.SaveRecord(ctx, testRecord(model.TypeExpense, 10, "2025-01-01", ""))
	require.NoError(t, err)
	_, err = store.AddTag(ctx, id, "work")
	require.NoError(t, err)

	removed, err := store.RemoveTag(ctx, id, "work")
	require.NoError(t, err)
	assert.True(t, removed)

	rec, err := store.GetRecordByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, rec.Tags)

	removed, err = store.RemoveTag(ctx, id, "work")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAddPhoto(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	id, err := store.SaveRecord(ctx, testRecord(model.TypeExpense, 10, "2025-01-01", ""))
	require.NoError(t, err)

	photo, err := store.AddPhoto(ctx, id, "/tmp/receipt-1.jpg")
	require.NoError(t, err)
	assert.NotEmpty(t, photo.ID)
	_, err = store.AddPhoto(ctx, id, "/tmp/receipt-2.jpg")
	require.NoError(t, err)

	photos, err := store.GetPhotos(ctx, id)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "/tmp/receipt-1.jpg", photos[0].FilePath)
	assert.Equal(t, "/tmp/receipt-2.jpg", photos[1].FilePath)
}

func TestAddPhoto_EmptyPath(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.AddPhoto(context.Background(), "rec-1", "  ")
	assert.Error(t, err)
}

func TestAddPhoto_DuplicatePath(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	id, err := store.SaveRecord(ctx, testRecord(model.TypeExpense, 10, "2025-01-01", ""))
	require.NoError(t, err)

	_, err = store.AddPhoto(ctx, id, "/tmp/receipt-1.jpg")
	require.NoError(t, err)

	_, err = store.AddPhoto(ctx, id, "/tmp/receipt-1.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	// The same path on a different record is fine.
	other, err := store.SaveRecord(ctx, testRecord(model.TypeExpense, 20, "2025-01-02", ""))
	require.NoError(t, err)
	_, err = store.AddPhoto(ctx, other, "/tmp/receipt-1.jpg")
	assert.NoError(t, err)
}
