package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"wordler/service"
	"wordler/spreadsheet"

	log "github.com/sirupsen/logrus"
)

// ExportResults writes a chat's results with submission dates in [from, to] as a workbook
func ExportResults(ctx context.Context, repo service.ScoredResultRepository, chatID string, from, to time.Time, w io.Writer) (int, error) {
	records, err := repo.ListByDateRange(ctx, chatID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load results: %w", err)
	}

	if err := spreadsheet.WriteWorkbook(w, records); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}

	log.WithFields(log.Fields{
		"chat_id": chatID,
		"from":    from.Format(time.DateOnly),
		"to":      to.Format(time.DateOnly),
		"rows":    len(records),
	}).Info("Exported results")

	return len(records), nil
}

// ErrVolatileBackend is returned when an offline command would read or write
// the in-memory backend, which does not outlive the command
var ErrVolatileBackend = errors.New("the memory backend does not keep results between runs; set PERSISTENCE_BACKEND to postgres or xlsx")

// ImportResults reads a workbook and saves its rows into the backend
func ImportResults(ctx context.Context, backend *Backend, r io.Reader) (ImportSummary, error) {
	if !backend.Durable() {
		return ImportSummary{}, ErrVolatileBackend
	}

	records, err := spreadsheet.ReadWorkbook(r)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("failed to read workbook: %w", err)
	}

	summary, err := backend.Import(ctx, records)
	if err != nil {
		return ImportSummary{}, err
	}

	log.WithFields(log.Fields{
		"backend":  backend.Name,
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
		"invalid":  summary.Invalid,
	}).Info("Imported results")

	return summary, nil
}
