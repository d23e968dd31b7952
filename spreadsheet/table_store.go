package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"wordler/models"
	"wordler/service"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// TableStore persists scored results to a single .xlsx workbook on disk.
// The workbook is loaded once and rewritten in full on every save.
type TableStore struct {
	path    string
	mu      sync.Mutex
	loaded  bool
	records []models.PersistRequest
}

// NewTableStore creates a table store backed by the workbook at path; the file is created on first save
func NewTableStore(path string) *TableStore {
	return &TableStore{path: path}
}

var (
	_ service.ScoredResultRepository = (*TableStore)(nil)
	_ service.ChatLister             = (*TableStore)(nil)
)

// Save appends a record, returning service.ErrDuplicateResult if the player already has one for the game
func (s *TableStore) Save(ctx context.Context, rec models.PersistRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	for _, existing := range s.records {
		if existing.ChatID == rec.ChatID && existing.Player == rec.Player && existing.GameNumber == rec.GameNumber {
			return fmt.Errorf("game %d for player %s in chat %s: %w", rec.GameNumber, rec.Player, rec.ChatID, service.ErrDuplicateResult)
		}
	}

	records := append(s.records, rec)
	if err := s.flush(records); err != nil {
		return err
	}
	s.records = records

	log.WithFields(log.Fields{
		"path":        s.path,
		"chat_id":     rec.ChatID,
		"game_number": rec.GameNumber,
		"rows":        len(s.records),
	}).Debug("Saved result to workbook")
	return nil
}

// ListByDateRange returns the chat's records with submission dates in [from, to] in arrival order
func (s *TableStore) ListByDateRange(ctx context.Context, chatID string, from, to time.Time) ([]models.PersistRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	period := models.TournamentPeriod{Start: from, End: to}
	var out []models.PersistRequest
	for _, rec := range s.records {
		if rec.ChatID == chatID && period.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ChatIDs returns every chat with at least one row in the workbook, sorted
func (s *TableStore) ChatIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var chats []string
	for _, rec := range s.records {
		if _, ok := seen[rec.ChatID]; !ok {
			seen[rec.ChatID] = struct{}{}
			chats = append(chats, rec.ChatID)
		}
	}
	sort.Strings(chats)
	return chats, nil
}

func (s *TableStore) load() error {
	if s.loaded {
		return nil
	}

	f, err := excelize.OpenFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		return fmt.Errorf("failed to read workbook %s: %w", s.path, err)
	}

	s.records = records
	s.loaded = true
	return nil
}

// flush writes the workbook to a temporary file and renames it over the target
func (s *TableStore) flush(records []models.PersistRequest) error {
	f, err := NewWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".wordler-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temporary workbook: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write workbook %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close workbook %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace workbook %s: %w", s.path, err)
	}
	return nil
}
