package port

import (
	"cmdbot/internal/core/domain"
	"context"
)

type TextSender interface {
	// SendMessageReply sends a reply to the room the message came from.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) error
}
