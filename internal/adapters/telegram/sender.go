package telegram

import (
	"context"
	"fmt"

	"cmdbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MessageLimit is the longest text Telegram accepts in one message.
const MessageLimit = 4096

// API is the slice of the bot client the sender uses.
type API interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type Sender struct {
	api API
}

func NewSender(api API) *Sender {
	return &Sender{api: api}
}

// SendMessageReply replies in the room the message came from, chunking
// text that exceeds the Telegram message limit.
func (s *Sender) SendMessageReply(ctx context.Context, message *domain.Message, text string) error {
	for _, chunk := range chunkText(text, MessageLimit) {
		_, err := s.api.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: message.Room.ID,
			Text:   chunk,
			ReplyParameters: &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.Room.ID,
			},
		})
		if err != nil {
			return fmt.Errorf("%w: %s", domain.ErrSendingReplyFailed, err)
		}
	}

	return nil
}

func chunkText(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > 0 {
		size := min(len(runes), limit)
		chunks = append(chunks, string(runes[:size]))
		runes = runes[size:]
	}

	return chunks
}
