package repository

import (
	"context"
	"fmt"
	"time"

	"wordler/database"
	"wordler/models"
	"wordler/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// scoredResultDB is a local struct for database mapping
type scoredResultDB struct {
	ID             int64     `db:"id"`
	ChatID         string    `db:"chat_id"`
	SubmissionDate time.Time `db:"submission_date"`
	GameNumber     int       `db:"game_number"`
	Player         string    `db:"player"`
	AttemptsLabel  string    `db:"attempts_label"`
	Solved         bool      `db:"solved"`
	BaseScore      int       `db:"base_score"`
	BonusPoints    int       `db:"bonus_points"`
	TotalScore     int       `db:"total_score"`
	Grid           string    `db:"grid"`
	ArrivedAt      time.Time `db:"arrived_at"`
}

// toDomain converts the database struct to the persistence record
func (s *scoredResultDB) toDomain() models.PersistRequest {
	return models.PersistRequest{
		ChatID:        s.ChatID,
		Date:          s.SubmissionDate,
		GameNumber:    s.GameNumber,
		Player:        s.Player,
		AttemptsLabel: models.AttemptsLabel(s.AttemptsLabel),
		Solved:        s.Solved,
		BaseScore:     s.BaseScore,
		BonusPoints:   s.BonusPoints,
		TotalScore:    s.TotalScore,
		Grid:          s.Grid,
		ArrivedAt:     s.ArrivedAt,
	}
}

// scoredResultRepository implements service.ScoredResultRepository on PostgreSQL
type scoredResultRepository struct {
	q Queryable
}

// NewScoredResultRepository creates a new scored result repository
func NewScoredResultRepository(db *database.DB) service.ScoredResultRepository {
	return &scoredResultRepository{q: db.Pool}
}

// NewScoredResultRepositoryWithTx creates a scored result repository bound to a transaction
func NewScoredResultRepositoryWithTx(tx pgx.Tx) service.ScoredResultRepository {
	return &scoredResultRepository{q: tx}
}

// Save inserts one record, returning service.ErrDuplicateResult if the player already has a row for the game
func (r *scoredResultRepository) Save(ctx context.Context, rec models.PersistRequest) error {
	query := `
		INSERT INTO scored_results (
			chat_id, submission_date, game_number, player, attempts_label, solved,
			base_score, bonus_points, total_score, grid, arrived_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (chat_id, player, game_number) DO NOTHING`

	tag, err := r.q.Exec(ctx, query,
		rec.ChatID,
		toDate(rec.Date),
		rec.GameNumber,
		rec.Player,
		string(rec.AttemptsLabel),
		rec.Solved,
		rec.BaseScore,
		rec.BonusPoints,
		rec.TotalScore,
		rec.Grid,
		rec.ArrivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save scored result: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d for player %s in chat %s: %w", rec.GameNumber, rec.Player, rec.ChatID, service.ErrDuplicateResult)
	}

	return nil
}

// ListByDateRange returns the chat's records with submission dates in [from, to], oldest arrival first
func (r *scoredResultRepository) ListByDateRange(ctx context.Context, chatID string, from, to time.Time) ([]models.PersistRequest, error) {
	query := `
		SELECT id, chat_id, submission_date, game_number, player, attempts_label, solved,
		       base_score, bonus_points, total_score, grid, arrived_at
		FROM scored_results
		WHERE chat_id = $1 AND submission_date BETWEEN $2 AND $3
		ORDER BY arrived_at ASC, id ASC`

	rows, err := r.q.Query(ctx, query, chatID, toDate(from), toDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list scored results: %w", err)
	}
	defer rows.Close()

	var records []models.PersistRequest
	for rows.Next() {
		var row scoredResultDB
		if err := rows.Scan(
			&row.ID,
			&row.ChatID,
			&row.SubmissionDate,
			&row.GameNumber,
			&row.Player,
			&row.AttemptsLabel,
			&row.Solved,
			&row.BaseScore,
			&row.BonusPoints,
			&row.TotalScore,
			&row.Grid,
			&row.ArrivedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scored result: %w", err)
		}
		records = append(records, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scored results: %w", err)
	}

	return records, nil
}

// ChatIDs returns every chat with at least one stored result, sorted
func (r *scoredResultRepository) ChatIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT chat_id FROM scored_results ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []string
	for rows.Next() {
		var chatID string
		if err := rows.Scan(&chatID); err != nil {
			return nil, fmt.Errorf("failed to scan chat id: %w", err)
		}
		chats = append(chats, chatID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chats: %w", err)
	}

	return chats, nil
}

// toDate keeps only the calendar day of t as seen in its own location
func toDate(t time.Time) pgtype.Date {
	return pgtype.Date{
		Time:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}
