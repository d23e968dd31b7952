package application

import (
	"context"

	"wordler/models"
)

// MemberDirectory reports how many members are expected to play in a chat
type MemberDirectory interface {
	MemberCount(ctx context.Context, chatID string) (int, error)
}

// WordleHandler turns inbound chat messages into reaction and reply directives
type WordleHandler interface {
	HandleMessage(ctx context.Context, msg models.RawMessage) models.Directive
}
