package poller

import (
	"time"

	"github.com/cenkalti/backoff"
)

// pacer yields the wait between cycles: a fixed interval, optionally
// randomized by ±jitter.
type pacer struct {
	b *backoff.ExponentialBackOff
}

func newPacer(interval time.Duration, jitter float64) *pacer {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = interval
	b.MaxInterval = interval
	b.Multiplier = 1
	b.RandomizationFactor = jitter
	b.MaxElapsedTime = 0
	b.Reset()
	return &pacer{b: b}
}

func (p *pacer) next() time.Duration {
	return p.b.NextBackOff()
}
