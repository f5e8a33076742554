package in

import (
	"context"

	"neurocalm/internal/modules/chat/dto"
)

type Usecase interface {
	Greeting(ctx context.Context) dto.MessageOutput
	Respond(ctx context.Context, text string) (dto.MessageOutput, error)
	SuggestedPrompts(ctx context.Context) []string
}
