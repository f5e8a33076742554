package service

import (
	"fmt"
	"strings"

	"neurocalm/internal/modules/chat/domain"
	"neurocalm/internal/platform/clock"
	apperrors "neurocalm/internal/platform/errors"
	"neurocalm/internal/platform/id"
	"neurocalm/internal/platform/latency"
)

// ChatService answers with the keyword responder after a simulated round
// trip to a remote assistant.
type ChatService struct {
	clock clock.Clock
	ids   id.Generator
	delay *latency.Simulator
}

func NewChatService(clk clock.Clock, ids id.Generator, delay *latency.Simulator) *ChatService {
	return &ChatService{clock: clk, ids: ids, delay: delay}
}

func (s *ChatService) Greeting() domain.Message {
	return domain.Message{ID: s.ids.New(), Sender: domain.SenderAssistant, Content: domain.Greeting, At: s.clock.Now()}
}

func (s *ChatService) Respond(text string) (domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Message{}, fmt.Errorf("%w: message is empty", apperrors.ErrInvalidInput)
	}
	s.delay.Wait()
	reply := domain.Respond(text)
	return domain.Message{
		ID:          s.ids.New(),
		Sender:      domain.SenderAssistant,
		Content:     reply.Content,
		StressLevel: reply.StressLevel,
		At:          s.clock.Now(),
	}, nil
}
