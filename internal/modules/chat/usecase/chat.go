package usecase

import (
	"context"

	"go.uber.org/zap"

	"neurocalm/internal/modules/chat/domain"
	"neurocalm/internal/modules/chat/dto"
	chatin "neurocalm/internal/modules/chat/port/in"
	"neurocalm/internal/modules/chat/service"
)

type Interactor struct {
	svc    *service.ChatService
	logger *zap.Logger
}

func NewInteractor(svc *service.ChatService, logger *zap.Logger) chatin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, logger: logger}
}

func (i *Interactor) Greeting(_ context.Context) dto.MessageOutput {
	return toOutput(i.svc.Greeting())
}

func (i *Interactor) Respond(_ context.Context, text string) (dto.MessageOutput, error) {
	msg, err := i.svc.Respond(text)
	if err != nil {
		return dto.MessageOutput{}, err
	}
	i.logger.Debug("assistant replied", zap.String("message_id", msg.ID), zap.Int("stress", msg.StressLevel))
	return toOutput(msg), nil
}

func (i *Interactor) SuggestedPrompts(_ context.Context) []string {
	return domain.SuggestedPrompts()
}

func toOutput(m domain.Message) dto.MessageOutput {
	return dto.MessageOutput{ID: m.ID, Sender: m.Sender, Content: m.Content, StressLevel: m.StressLevel, At: m.At}
}
