package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"wordler/config"
	"wordler/models"
	"wordler/repository"
	"wordler/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spreadsheetBackend(t *testing.T) *Backend {
	t.Helper()
	return &Backend{
		Name:       config.BackendXLSX,
		Repository: spreadsheet.NewTableStore(filepath.Join(t.TempDir(), "results.xlsx")),
	}
}

func TestExportResults_OnlySelectedChatAndRange(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryResultRepository()
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, record(t, "chat-1", "alice", 1234, "2", day, mixed, green)))
	require.NoError(t, repo.Save(ctx, record(t, "chat-1", "alice", 1250, "1", day.AddDate(0, 0, 16), green)))
	require.NoError(t, repo.Save(ctx, record(t, "chat-2", "bob", 1234, "1", day, green)))

	var buf bytes.Buffer
	rows, err := ExportResults(ctx, repo, "chat-1", day.AddDate(0, 0, -4), day.AddDate(0, 0, 10), &buf)

	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	records, err := spreadsheet.ReadWorkbook(&buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Player)
	assert.Equal(t, 1234, records[0].GameNumber)
}

func TestImportResults_LoadsExportedWorkbook(t *testing.T) {
	ctx := context.Background()
	source := repository.NewMemoryResultRepository()
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, source.Save(ctx, record(t, "chat-1", "alice", 1234, "2", day, mixed, green)))
	require.NoError(t, source.Save(ctx, record(t, "chat-1", "bob", 1234, models.AttemptsFailed, day, mixed)))

	var buf bytes.Buffer
	_, err := ExportResults(ctx, source, "chat-1", day, day, &buf)
	require.NoError(t, err)

	target := spreadsheetBackend(t)
	require.NoError(t, target.Repository.Save(ctx, record(t, "chat-1", "bob", 1234, models.AttemptsFailed, day, mixed)))

	summary, err := ImportResults(ctx, target, bytes.NewReader(buf.Bytes()))

	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Imported: 1, Skipped: 1}, summary)
}

func TestImportResults_RejectsGarbage(t *testing.T) {
	target := spreadsheetBackend(t)

	_, err := ImportResults(context.Background(), target, bytes.NewReader([]byte("not a workbook")))

	assert.Error(t, err)
}

func TestImportResults_RejectsMemoryBackend(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteWorkbook(&buf, nil))

	target := &Backend{Name: config.BackendMemory, Repository: repository.NewMemoryResultRepository()}
	_, err := ImportResults(context.Background(), target, &buf)

	assert.ErrorIs(t, err, ErrVolatileBackend)
}
