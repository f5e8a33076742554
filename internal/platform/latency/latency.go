package latency

import (
	"math/rand"
	"time"
)

// Simulator stands in for the round trip of an external service. A call is
// delayed by a fixed MinMs, or by a uniform pick in [MinMs, MaxMs] when MaxMs
// is larger. The wait cannot be cancelled once started.
type Simulator struct {
	MinMs int
	MaxMs int

	sleep func(time.Duration)
}

func New(minMs, maxMs int) *Simulator {
	return &Simulator{MinMs: minMs, MaxMs: maxMs, sleep: time.Sleep}
}

// None never waits.
func None() *Simulator {
	return New(0, 0)
}

func (s *Simulator) Delay() time.Duration {
	if s == nil {
		return 0
	}
	ms := s.MinMs
	if s.MaxMs > s.MinMs {
		ms = s.MinMs + rand.Intn(s.MaxMs-s.MinMs+1)
	}
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// Wait blocks for one simulated round trip and reports how long it took.
func (s *Simulator) Wait() time.Duration {
	d := s.Delay()
	if d > 0 {
		sleep := time.Sleep
		if s.sleep != nil {
			sleep = s.sleep
		}
		sleep(d)
	}
	return d
}
