package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordler/config"
	"wordler/database"
	"wordler/models"
	"wordler/repository"
	"wordler/service"
	"wordler/spreadsheet"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// hydrateFrom is early enough to cover every stored submission date
var hydrateFrom = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Backend is the configured persistence collaborator
type Backend struct {
	Name       string
	Repository service.ScoredResultRepository
	DB         *database.DB // set only for postgres
}

// OpenBackend connects the persistence backend named in the config. The postgres
// backend is migrated before the pool is opened.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.PersistenceBackend {
	case config.BackendMemory:
		log.Warn("Using in-memory persistence, results will not survive a restart")
		return &Backend{Name: config.BackendMemory, Repository: repository.NewMemoryResultRepository()}, nil

	case config.BackendXLSX:
		log.WithField("path", cfg.XLSXPath).Info("Using spreadsheet persistence")
		return &Backend{Name: config.BackendXLSX, Repository: spreadsheet.NewTableStore(cfg.XLSXPath)}, nil

	case config.BackendPostgres:
		databaseURL := cfg.GetDatabaseURL()
		if err := database.MigrateUp(databaseURL); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		db, err := database.NewConnection(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connection established")
		return &Backend{Name: config.BackendPostgres, Repository: repository.NewScoredResultRepository(db), DB: db}, nil

	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.PersistenceBackend)
	}
}

// Durable reports whether records written to the backend outlive the process
func (b *Backend) Durable() bool {
	return b.Name != config.BackendMemory
}

// Close releases the database pool if one was opened
func (b *Backend) Close() {
	if b.DB != nil {
		b.DB.Close()
		log.Info("Database connection closed")
	}
}

// ImportSummary counts the outcome of an import
type ImportSummary struct {
	Imported int
	Skipped  int // already stored
	Invalid  int // failed validation
}

// Import saves records that are not already stored. On postgres the whole batch
// runs in one transaction.
func (b *Backend) Import(ctx context.Context, records []models.PersistRequest) (ImportSummary, error) {
	if b.DB == nil {
		return saveAll(ctx, b.Repository, records)
	}

	var summary ImportSummary
	err := b.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		summary, err = saveAll(ctx, repository.NewScoredResultRepositoryWithTx(tx), records)
		return err
	})
	if err != nil {
		return ImportSummary{}, err
	}
	return summary, nil
}

func saveAll(ctx context.Context, repo service.ScoredResultRepository, records []models.PersistRequest) (ImportSummary, error) {
	var summary ImportSummary
	for _, rec := range records {
		if _, err := models.ScoredResultFromRecord(rec); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"chat_id":     rec.ChatID,
				"player":      rec.Player,
				"game_number": rec.GameNumber,
			}).Warn("Skipping invalid record during import")
			summary.Invalid++
			continue
		}

		err := repo.Save(ctx, rec)
		switch {
		case errors.Is(err, service.ErrDuplicateResult):
			summary.Skipped++
		case err != nil:
			return summary, fmt.Errorf("failed to import game %d for player %s: %w", rec.GameNumber, rec.Player, err)
		default:
			summary.Imported++
		}
	}
	return summary, nil
}

// HydrateStores replays every stored chat into the registry. Backends that cannot
// list their chats leave the registry empty.
func HydrateStores(ctx context.Context, stores *repository.ChatStoreRegistry, repo service.ScoredResultRepository, now time.Time) (int, error) {
	lister, ok := repo.(service.ChatLister)
	if !ok {
		log.Debug("Persistence backend cannot list chats, skipping hydration")
		return 0, nil
	}

	chats, err := lister.ChatIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list stored chats: %w", err)
	}

	total := 0
	for _, chatID := range chats {
		loaded, err := stores.Hydrate(ctx, repo, chatID, hydrateFrom, now.AddDate(0, 0, 1))
		total += loaded
		if err != nil {
			return total, err
		}
	}

	log.WithFields(log.Fields{
		"chats":   len(chats),
		"results": total,
	}).Info("Restored stored results")

	return total, nil
}
