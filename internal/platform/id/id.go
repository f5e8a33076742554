package id

import (
	"strconv"
	"sync"

	"github.com/google/uuid"

	"neurocalm/internal/platform/clock"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// TimeBased yields "<prefix>-<unix millis>" ids. Two calls within the same
// millisecond still get distinct, increasing values.
type TimeBased struct {
	Prefix string
	Clock  clock.Clock

	mu   sync.Mutex
	last int64
}

func NewTimeBased(prefix string, clk clock.Clock) *TimeBased {
	return &TimeBased{Prefix: prefix, Clock: clk}
}

func (g *TimeBased) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.Clock.Now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return g.Prefix + "-" + strconv.FormatInt(ms, 10)
}
