package application

import (
	"context"
	"errors"
	"time"

	"wordler/events"
	"wordler/infrastructure/observability"
	"wordler/models"
	"wordler/repository"
	"wordler/service"

	log "github.com/sirupsen/logrus"
)

// WordleHandlerDeps collects the collaborators of the message handler.
// Members and Bus are optional.
type WordleHandlerDeps struct {
	Stores     *repository.ChatStoreRegistry
	Repository service.ScoredResultRepository
	Members    MemberDirectory
	Bus        *events.Bus
	Location   *time.Location
	Backend    string
}

// wordleHandler implements the WordleHandler interface
type wordleHandler struct {
	stores   *repository.ChatStoreRegistry
	repo     service.ScoredResultRepository
	members  MemberDirectory
	bus      *events.Bus
	location *time.Location
	backend  string
}

// NewWordleHandler creates a new WordleHandler
func NewWordleHandler(deps WordleHandlerDeps) WordleHandler {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &wordleHandler{
		stores:   deps.Stores,
		repo:     deps.Repository,
		members:  deps.Members,
		bus:      deps.Bus,
		location: loc,
		backend:  deps.Backend,
	}
}

// HandleMessage recognizes, parses and scores a message. Anything that is not a
// fresh, valid result yields an empty directive.
func (h *wordleHandler) HandleMessage(ctx context.Context, msg models.RawMessage) models.Directive {
	metrics := observability.GetMetrics()
	metrics.RecordMessageRead(observability.MessageTypeMessage)

	if !IsWordleResult(msg.Text) {
		return models.Directive{}
	}

	logger := log.WithFields(log.Fields{
		"chat_id":   msg.ChatID,
		"author_id": msg.AuthorID,
	})

	parsed, err := ParseWordleResult(msg.Text)
	if err != nil {
		metrics.RecordParseRejection(rejectionReason(err))
		logger.WithError(err).Debug("Ignoring unparseable Wordle message")
		return models.Directive{}
	}

	result, err := models.NewScoredResult(parsed, msg.AuthorID, msg.ChatID, msg.ArrivedAt, h.location)
	if err != nil {
		metrics.RecordParseRejection(observability.RejectReasonInvalid)
		logger.WithError(err).Warn("Failed to attribute Wordle result")
		return models.Directive{}
	}

	logger = logger.WithField("game_number", result.GameNumber)

	store := h.stores.Store(msg.ChatID)
	outcome, err := store.Add(result, h.expectedMembers(ctx, msg.ChatID))
	if err != nil {
		logger.WithError(err).Error("Failed to record Wordle result")
		return models.Directive{}
	}
	if !outcome.Added {
		metrics.RecordDuplicateResult()
		logger.Debug("Ignoring repeated Wordle submission")
		return models.Directive{}
	}

	metrics.RecordResultScored(string(result.AttemptsLabel))
	logger.WithFields(log.Fields{
		"attempts": result.AttemptsLabel,
		"base":     result.Score.Base,
		"bonus":    result.Score.Bonus,
		"total":    result.Score.Total,
	}).Info("Scored Wordle result")

	h.persist(ctx, result)
	h.emit(ctx, events.ResultScoredEvent{
		ChatID:        result.ChatID,
		PlayerID:      result.PlayerID,
		GameNumber:    result.GameNumber,
		AttemptsLabel: string(result.AttemptsLabel),
		Solved:        result.Solved,
		BaseScore:     result.Score.Base,
		BonusPoints:   result.Score.Bonus,
		TotalScore:    result.Score.Total,
		Date:          result.Date.Format(models.DateLayout),
		ArrivedAt:     result.ArrivedAt,
	})

	directive := models.Directive{
		Reaction:  models.ReactionFor(result),
		ReplyText: FormatScoreLine(result),
	}

	if outcome.Completed {
		ranked := service.RankResults(store.GameResults(result.GameNumber))
		directive.ReplyText += "\n\n" + FormatGameLeaderboard(result.GameNumber, ranked, mentionPlayer)

		metrics.RecordGameCompleted()
		logger.WithField("participants", len(ranked)).Info("All members submitted the game")

		if len(ranked) > 0 {
			h.emit(ctx, events.GameCompletedEvent{
				ChatID:       result.ChatID,
				GameNumber:   result.GameNumber,
				Participants: len(ranked),
				WinnerID:     ranked[0].Result.PlayerID,
				WinningScore: ranked[0].Result.Score.Total,
			})
		}
	}

	return directive
}

// persist hands the record to the persistence collaborator. Failures are logged only.
func (h *wordleHandler) persist(ctx context.Context, result models.ScoredResult) {
	if h.repo == nil {
		return
	}

	start := time.Now()
	err := h.repo.Save(ctx, result.Record())
	elapsed := time.Since(start)

	outcome := observability.OutcomeSuccess
	switch {
	case errors.Is(err, service.ErrDuplicateResult):
		outcome = observability.OutcomeDuplicate
		log.WithFields(log.Fields{
			"chat_id":     result.ChatID,
			"player":      result.PlayerID,
			"game_number": result.GameNumber,
		}).Debug("Result already persisted")
	case err != nil:
		outcome = observability.OutcomeError
		log.WithError(err).WithFields(log.Fields{
			"chat_id":     result.ChatID,
			"player":      result.PlayerID,
			"game_number": result.GameNumber,
		}).Error("Failed to persist Wordle result")
	}

	observability.GetMetrics().RecordPersistence(h.backend, "Save", outcome, elapsed)
}

func (h *wordleHandler) emit(ctx context.Context, event events.Event) {
	if h.bus == nil {
		return
	}
	h.bus.Emit(context.WithoutCancel(ctx), event)
}

// expectedMembers returns the chat's member count, or zero when unknown
func (h *wordleHandler) expectedMembers(ctx context.Context, chatID string) int {
	if h.members == nil {
		return 0
	}
	count, err := h.members.MemberCount(ctx, chatID)
	if err != nil {
		log.WithError(err).WithField("chat_id", chatID).Warn("Failed to look up chat members")
		return 0
	}
	return count
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrNoHeader):
		return observability.RejectReasonNoHeader
	case errors.Is(err, ErrNoGridRows):
		return observability.RejectReasonNoGrid
	default:
		return observability.RejectReasonInvalid
	}
}
