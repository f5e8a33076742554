package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"neurocalm/internal/modules/chat/service"
	"neurocalm/internal/modules/chat/usecase"
	apperrors "neurocalm/internal/platform/errors"
	"neurocalm/internal/platform/id"
	"neurocalm/internal/platform/latency"
)

type fixedClock struct{ at time.Time }

func (f fixedClock) Now() time.Time { return f.at }

func TestRespondStampsReply(t *testing.T) {
	t.Parallel()
	clk := fixedClock{at: time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC)}
	uc := usecase.NewInteractor(service.NewChatService(clk, id.NewTimeBased("msg", clk), latency.None()), nil)

	greeting := uc.Greeting(context.Background())
	reply, err := uc.Respond(context.Background(), "I can't sleep after the nightmare")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.StressLevel != 65 || reply.Sender != "assistant" || !reply.At.Equal(clk.at) {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if reply.ID == greeting.ID {
		t.Fatalf("message ids must differ")
	}
	if len(uc.SuggestedPrompts(context.Background())) == 0 {
		t.Fatalf("expected suggested prompts")
	}
}

func TestRespondRejectsBlankMessage(t *testing.T) {
	t.Parallel()
	clk := fixedClock{at: time.Now()}
	uc := usecase.NewInteractor(service.NewChatService(clk, id.UUID{}, latency.None()), nil)
	if _, err := uc.Respond(context.Background(), "   "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
