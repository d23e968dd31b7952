package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"wordler/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessageSender struct {
	mock.Mock
}

func (m *MockMessageSender) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID, emojiID)
	return args.Error(0)
}

func (m *MockMessageSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func sourceMessage() *discordgo.Message {
	return &discordgo.Message{
		ID:        "msg-1",
		ChannelID: "chat-1",
		GuildID:   "guild-1",
		Content:   "Wordle 1,234 4/6",
		Timestamp: time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC),
		Author:    &discordgo.User{ID: "alice", Username: "alice", GlobalName: "Alice"},
	}
}

func TestApplyDirective_ReactsAndReplies(t *testing.T) {
	sender := new(MockMessageSender)
	msg := sourceMessage()

	sender.On("MessageReactionAdd", "chat-1", "msg-1", models.ReactionSolved).Return(nil)
	sender.On("ChannelMessageSendComplex", "chat-1", mock.MatchedBy(func(data *discordgo.MessageSend) bool {
		return data.Content == "Wordle 1,234 4/6 → 300 + 21 bonus = 321" &&
			data.Reference != nil && data.Reference.MessageID == "msg-1" &&
			data.AllowedMentions != nil && len(data.AllowedMentions.Parse) == 0
	})).Return(&discordgo.Message{ID: "reply-1"}, nil)

	err := applyDirective(context.Background(), sender, newReplyLimiter(0), msg, models.Directive{
		Reaction:  models.ReactionSolved,
		ReplyText: "Wordle 1,234 4/6 → 300 + 21 bonus = 321",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestApplyDirective_ReactionOnly(t *testing.T) {
	sender := new(MockMessageSender)
	sender.On("MessageReactionAdd", "chat-1", "msg-1", models.ReactionFailed).Return(nil)

	err := applyDirective(context.Background(), sender, newReplyLimiter(0), sourceMessage(), models.Directive{
		Reaction: models.ReactionFailed,
	})

	require.NoError(t, err)
	sender.AssertNotCalled(t, "ChannelMessageSendComplex", mock.Anything, mock.Anything)
}

func TestApplyDirective_ReactionFailureStillReplies(t *testing.T) {
	sender := new(MockMessageSender)
	sender.On("MessageReactionAdd", "chat-1", "msg-1", models.ReactionSolved).Return(errors.New("missing permissions"))
	sender.On("ChannelMessageSendComplex", "chat-1", mock.Anything).Return(&discordgo.Message{ID: "reply-1"}, nil)

	err := applyDirective(context.Background(), sender, newReplyLimiter(0), sourceMessage(), models.Directive{
		Reaction:  models.ReactionSolved,
		ReplyText: "score",
	})

	assert.ErrorContains(t, err, "missing permissions")
	sender.AssertCalled(t, "ChannelMessageSendComplex", "chat-1", mock.Anything)
}

func TestApplyDirective_ThrottledReplyIsSkipped(t *testing.T) {
	sender := new(MockMessageSender)
	sender.On("ChannelMessageSendComplex", "chat-1", mock.Anything).Return(&discordgo.Message{ID: "reply-1"}, nil).Once()

	limiter := newReplyLimiter(0.5)
	msg := sourceMessage()

	require.NoError(t, applyDirective(context.Background(), sender, limiter, msg, models.Directive{ReplyText: "first"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := applyDirective(ctx, sender, limiter, msg, models.Directive{ReplyText: "second"})

	assert.ErrorContains(t, err, "reply throttled")
	sender.AssertNumberOfCalls(t, "ChannelMessageSendComplex", 1)
}

func TestToRawMessage(t *testing.T) {
	raw := toRawMessage(sourceMessage())

	assert.Equal(t, "Wordle 1,234 4/6", raw.Text)
	assert.Equal(t, "alice", raw.AuthorID)
	assert.Equal(t, "Alice", raw.AuthorName)
	assert.Equal(t, "chat-1", raw.ChatID)
	assert.Equal(t, time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC), raw.ArrivedAt)
}
