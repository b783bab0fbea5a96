package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelhub/internal/http-api/models"
)

const testUserID = "2b1f8a04-6a3c-4c29-9f3e-0d8f6a1b2c3d"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type progressFixture struct {
	store   *memStore
	catalog *memCatalog
	privacy *stubPrivacy
	svc     *progressService
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	f := &progressFixture{
		store:   newMemStore(),
		catalog: newMemCatalog(),
		privacy: &stubPrivacy{},
	}
	// Novel 1 has chapters 101..105 (numbers 1..5).
	f.catalog.addNovel(models.Novel{ID: 1, Title: "Sword of Dawn", Author: "R. Venn", ChapterCount: 5}, 100)
	f.svc = NewProgressService(f.store, f.catalog, f.privacy, testLogger()).(*progressService)
	f.svc.now = func() time.Time {
		return time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC)
	}
	return f
}

func TestRecordProgress_PersistsProgressAndHistory(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	err := f.svc.RecordProgress(ctx, testUserID, 101, 42.5, 1200, false)
	require.NoError(t, err)

	rec, err := f.svc.GetProgress(ctx, testUserID, 101)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 42.5, rec.Percentage)
	assert.Equal(t, 1200, rec.CursorPosition)
	assert.False(t, rec.Completed)

	assert.Len(t, f.store.history, 1)
	// Partial reads never move the library pointer.
	assert.Empty(t, f.store.pointers)
}

func TestRecordProgress_CompletionImpliesFullPercentage(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	err := f.svc.RecordProgress(ctx, testUserID, 101, 37, 0, true)
	require.NoError(t, err)

	rec, err := f.svc.GetProgress(ctx, testUserID, 101)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, float64(100), rec.Percentage)
	assert.True(t, rec.Completed)
}

func TestRecordProgress_PointerIsMonotonic(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	// Complete chapters out of order: 1, 3, then back to 2.
	for _, chapterID := range []int64{101, 103, 102} {
		require.NoError(t, f.svc.RecordProgress(ctx, testUserID, chapterID, 100, 0, true))
	}

	ptr, err := f.svc.GetLastReadChapter(ctx, testUserID, 1)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	assert.Equal(t, 3, ptr.LastReadChapter, "re-reading an earlier chapter must not move the pointer back")

	// Jumping ahead still advances.
	require.NoError(t, f.svc.RecordProgress(ctx, testUserID, 105, 100, 0, true))
	ptr, err = f.svc.GetLastReadChapter(ctx, testUserID, 1)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	assert.Equal(t, 5, ptr.LastReadChapter)
}

func TestRecordProgress_Idempotent(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RecordProgress(ctx, testUserID, 102, 100, 0, true))
	require.NoError(t, f.svc.RecordProgress(ctx, testUserID, 102, 100, 0, true))

	assert.Len(t, f.store.progress, 1)
	assert.Len(t, f.store.history, 1)
	ptr, err := f.svc.GetLastReadChapter(ctx, testUserID, 1)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	assert.Equal(t, 2, ptr.LastReadChapter)
}

func TestRecordProgress_PrivacyModeSuppressesWrites(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	f.privacy.enabled = true

	// Succeeds, but nothing is persisted.
	require.NoError(t, f.svc.RecordProgress(ctx, testUserID, 101, 100, 0, true))
	assert.Empty(t, f.store.progress)
	assert.Empty(t, f.store.history)
	assert.Empty(t, f.store.pointers)

	// Toggling privacy off mid-session resumes recording from that point.
	f.privacy.enabled = false
	require.NoError(t, f.svc.RecordProgress(ctx, testUserID, 102, 100, 0, true))
	assert.Len(t, f.store.history, 1)
	ptr, err := f.svc.GetLastReadChapter(ctx, testUserID, 1)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	assert.Equal(t, 2, ptr.LastReadChapter)
}

func TestRecordProgress_PrivacyProviderErrorFailsClosed(t *testing.T) {
	f := newProgressFixture(t)
	f.privacy.err = errors.New("redis down")

	err := f.svc.RecordProgress(context.Background(), testUserID, 101, 50, 0, false)
	require.Error(t, err)
	assert.Empty(t, f.store.progress)
	assert.Empty(t, f.store.history)
}

func TestRecordProgress_Validation(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		chapterID  int64
		percentage float64
		cursor     int
		wantErr    error
	}{
		{"malformed user id", "not-a-uuid", 101, 50, 0, ErrInvalidArgument},
		{"percentage below range", testUserID, 101, -1, 0, ErrInvalidArgument},
		{"percentage above range", testUserID, 101, 100.1, 0, ErrInvalidArgument},
		{"negative cursor", testUserID, 101, 50, -1, ErrInvalidArgument},
		{"unknown chapter", testUserID, 999, 50, 0, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.RecordProgress(ctx, tt.userID, tt.chapterID, tt.percentage, tt.cursor, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Rejected events leave no trace.
	assert.Empty(t, f.store.progress)
	assert.Empty(t, f.store.history)
}

func TestGetProgress_UnknownChapterReturnsNil(t *testing.T) {
	f := newProgressFixture(t)

	rec, err := f.svc.GetProgress(context.Background(), testUserID, 101)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestGetLastReadChapter_UnreadNovelReturnsNil(t *testing.T) {
	f := newProgressFixture(t)

	ptr, err := f.svc.GetLastReadChapter(context.Background(), testUserID, 1)
	require.NoError(t, err)
	assert.Nil(t, ptr)
}

func TestClearAllHistory(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RecordProgress(ctx, testUserID, 101, 100, 0, true))
	require.NoError(t, f.svc.RecordProgress(ctx, testUserID, 102, 60, 0, false))

	// Another user's records must survive the wipe.
	other := "7f3d9c21-44ab-4c70-8a55-1e2f3a4b5c6d"
	require.NoError(t, f.svc.RecordProgress(ctx, other, 101, 100, 0, true))

	require.NoError(t, f.svc.ClearAllHistory(ctx, testUserID))

	assert.Len(t, f.store.progress, 1)
	assert.Len(t, f.store.history, 1)
	assert.Len(t, f.store.pointers, 1)

	rec, err := f.svc.GetProgress(ctx, other, 101)
	require.NoError(t, err)
	assert.NotNil(t, rec)
}
