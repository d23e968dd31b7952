package bot

import (
	"context"
	"errors"
	"fmt"

	"wordler/infrastructure/observability"
	"wordler/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// messageSender is the part of the Discord session used to act on a directive
type messageSender interface {
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// handleMessageCreate feeds channel messages to the Wordle handler and applies its directive
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	if b.config.WatchesChannel != nil && !b.config.WatchesChannel(m.ChannelID) {
		return
	}

	ctx := context.Background()
	directive := b.handler.HandleMessage(ctx, toRawMessage(m.Message))
	if directive.IsEmpty() {
		return
	}

	if err := applyDirective(ctx, s, b.limiter, m.Message, directive); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"channel_id": m.ChannelID,
			"message_id": m.ID,
		}).Error("Failed to apply Wordle directive")
	}
}

// toRawMessage converts a Discord message into the handler's input
func toRawMessage(m *discordgo.Message) models.RawMessage {
	raw := models.RawMessage{
		Text:      m.Content,
		ChatID:    m.ChannelID,
		ArrivedAt: m.Timestamp,
	}
	if m.Author != nil {
		raw.AuthorID = m.Author.ID
		raw.AuthorName = m.Author.DisplayName()
	}
	return raw
}

// applyDirective reacts to the source message and posts the reply text as a reply.
// Mentions in the reply are rendered but never ping.
func applyDirective(ctx context.Context, sender messageSender, limiter *replyLimiter, msg *discordgo.Message, directive models.Directive) error {
	var errs []error

	if directive.Reaction != "" {
		if err := sender.MessageReactionAdd(msg.ChannelID, msg.ID, directive.Reaction, discordgo.WithContext(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("failed to add reaction: %w", err))
		}
	}

	if directive.ReplyText != "" {
		if err := limiter.Wait(ctx, msg.ChannelID); err != nil {
			errs = append(errs, fmt.Errorf("reply throttled: %w", err))
		} else {
			_, err := sender.ChannelMessageSendComplex(msg.ChannelID, &discordgo.MessageSend{
				Content:         directive.ReplyText,
				Reference:       msg.Reference(),
				AllowedMentions: &discordgo.MessageAllowedMentions{},
			}, discordgo.WithContext(ctx))
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to send reply: %w", err))
			} else {
				observability.GetMetrics().RecordReplySent()
			}
		}
	}

	return errors.Join(errs...)
}
