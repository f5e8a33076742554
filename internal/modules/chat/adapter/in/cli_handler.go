package in

import (
	"context"

	chatdto "neurocalm/internal/modules/chat/dto"
	chatin "neurocalm/internal/modules/chat/port/in"
)

type CLIHandler struct {
	usecase chatin.Usecase
}

func NewCLIHandler(usecase chatin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Greeting(ctx context.Context) chatdto.MessageOutput {
	return h.usecase.Greeting(ctx)
}

func (h CLIHandler) Respond(ctx context.Context, text string) (chatdto.MessageOutput, error) {
	return h.usecase.Respond(ctx, text)
}

func (h CLIHandler) SuggestedPrompts(ctx context.Context) []string {
	return h.usecase.SuggestedPrompts(ctx)
}
