package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"wordler/models"
	"wordler/repository/testutil"
	"wordler/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResultRepository_SaveAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResultRepository()

	march14 := time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)
	march15 := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	march16 := time.Date(2024, 3, 16, 0, 1, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, testutil.CreateTestRecord("chat-1", "alice", 1000, "3", march14)))
	require.NoError(t, repo.Save(ctx, testutil.CreateTestRecord("chat-1", "alice", 1001, "4", march15)))
	require.NoError(t, repo.Save(ctx, testutil.CreateTestRecord("chat-1", "alice", 1002, "5", march16)))
	require.NoError(t, repo.Save(ctx, testutil.CreateTestRecord("chat-2", "alice", 1001, "2", march15)))

	start, end, err := models.RangeFor("2024-03-T1")
	require.NoError(t, err)

	records, err := repo.ListByDateRange(ctx, "chat-1", start, end)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1000, records[0].GameNumber)
	assert.Equal(t, 1001, records[1].GameNumber)
}

func TestMemoryResultRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResultRepository()
	at := time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, testutil.CreateTestRecord("chat-1", "alice", 1000, "3", at)))
	err := repo.Save(ctx, testutil.CreateTestRecord("chat-1", "alice", 1000, "2", at))

	assert.True(t, errors.Is(err, service.ErrDuplicateResult))

	// Another chat is a separate competition
	assert.NoError(t, repo.Save(ctx, testutil.CreateTestRecord("chat-2", "alice", 1000, "2", at)))
}

func TestMemoryResultRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryResultRepository()
	err := repo.Save(ctx, testutil.CreateTestRecord("chat-1", "alice", 1000, "3", time.Now()))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryResultRepository_ChatIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResultRepository()
	at := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, testutil.CreateTestRecord("chat-b", "alice", 1000, "3", at)))
	require.NoError(t, repo.Save(ctx, testutil.CreateTestRecord("chat-a", "alice", 1000, "3", at)))

	chats, err := repo.(service.ChatLister).ChatIDs(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"chat-a", "chat-b"}, chats)
}
