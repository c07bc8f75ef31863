package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

func Ask(sender port.TextSender, generator port.TextGenerator) *command.Command {
	cmd := &command.Command{
		Name:         "ask",
		Description:  "Asks the language model a question.",
		Usage:        "<prefix> ask [question]",
		Category:     domain.CategoryFun,
		ArgSeparator: "\n", // keep the question as a single argument
		RateLimit:    &command.Throttle{Calls: 3, Window: time.Minute},
		Handler: func(ctx context.Context, message *domain.Message, args []any) error {
			question, _ := args[0].(string)

			answer, err := generator.GenerateFromPrompt(ctx, question)
			if err != nil {
				log.Error().Err(err).Msg("failed to generate answer")
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("I couldn't come up with an answer: %s", err))
			}

			return sender.SendMessageReply(ctx, message, strings.TrimSpace(answer))
		},
	}

	cmd.Use(command.Expect(command.Arg{Name: "[question]", Type: command.ArgString}))

	return cmd
}
