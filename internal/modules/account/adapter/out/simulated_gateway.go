package out

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	accountout "neurocalm/internal/modules/account/port/out"
	apperrors "neurocalm/internal/platform/errors"
	"neurocalm/internal/platform/latency"
)

type MessageKind string

const (
	MessageVerification   MessageKind = "verification"
	MessagePasswordReset  MessageKind = "password-reset"
	MessagePasswordUpdate MessageKind = "password-update"
)

// Message is what the simulated gateway would have sent.
type Message struct {
	Kind  MessageKind
	Email string
	Link  string
}

// SimulatedGateway stands in for the mail and identity provider. Every call
// waits one simulated round trip; with fail set every call fails afterwards.
type SimulatedGateway struct {
	delay  *latency.Simulator
	fail   bool
	logger *zap.Logger

	mu     sync.Mutex
	outbox []Message
}

func NewSimulatedGateway(delay *latency.Simulator, fail bool, logger *zap.Logger) *SimulatedGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedGateway{delay: delay, fail: fail, logger: logger}
}

var _ accountout.Gateway = (*SimulatedGateway)(nil)

func (g *SimulatedGateway) SendVerificationEmail(_ context.Context, email string) error {
	return g.deliver(Message{Kind: MessageVerification, Email: email})
}

func (g *SimulatedGateway) SendPasswordReset(_ context.Context, email, link string) error {
	return g.deliver(Message{Kind: MessagePasswordReset, Email: email, Link: link})
}

func (g *SimulatedGateway) UpdatePassword(_ context.Context, email string) error {
	return g.deliver(Message{Kind: MessagePasswordUpdate, Email: email})
}

// Outbox returns the messages delivered so far.
func (g *SimulatedGateway) Outbox() []Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Message(nil), g.outbox...)
}

func (g *SimulatedGateway) deliver(msg Message) error {
	took := g.delay.Wait()
	if g.fail {
		g.logger.Warn("gateway call failed", zap.String("kind", string(msg.Kind)), zap.Duration("latency", took))
		return fmt.Errorf("%w: %s for %s", apperrors.ErrExternalCallFailure, msg.Kind, msg.Email)
	}
	// Unknown reset addresses get no message, only the same wait.
	if msg.Kind == MessagePasswordReset && msg.Link == "" {
		g.logger.Debug("password reset for unknown address", zap.Duration("latency", took))
		return nil
	}
	g.mu.Lock()
	g.outbox = append(g.outbox, msg)
	g.mu.Unlock()
	g.logger.Info("gateway message sent", zap.String("kind", string(msg.Kind)), zap.String("email", msg.Email), zap.Duration("latency", took))
	return nil
}
