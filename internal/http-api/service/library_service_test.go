package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelhub/internal/http-api/models"
)

func newLibraryFixture(t *testing.T) (LibraryService, *memStore) {
	t.Helper()
	store := newMemStore()
	catalog := newMemCatalog()
	catalog.addNovel(models.Novel{ID: 1, Title: "Sword of Dawn", Author: "R. Venn", ChapterCount: 5}, 100)
	return NewLibraryService(store, catalog), store
}

func TestLibraryAdd(t *testing.T) {
	svc, _ := newLibraryFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, testUserID, 1, "reading"))

	items, err := svc.List(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].NovelID)
	assert.Equal(t, "reading", items[0].Category)
}

func TestLibraryAdd_DuplicateIsNoOp(t *testing.T) {
	svc, _ := newLibraryFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, testUserID, 1, "reading"))
	require.NoError(t, svc.Add(ctx, testUserID, 1, "favorites"))

	items, err := svc.List(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "reading", items[0].Category, "first add wins")
}

func TestLibraryAdd_UnknownNovel(t *testing.T) {
	svc, store := newLibraryFixture(t)

	err := svc.Add(context.Background(), testUserID, 42, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.library)
}

func TestLibraryRemove(t *testing.T) {
	svc, _ := newLibraryFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, testUserID, 1, ""))
	require.NoError(t, svc.Remove(ctx, testUserID, 1))

	items, err := svc.List(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
