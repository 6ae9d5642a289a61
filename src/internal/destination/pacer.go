// FILE: logship/src/internal/destination/pacer.go
package destination

import (
	"sync/atomic"

	"golang.org/x/time/rate"
)

// pacer limits how often a destination starts a send.
// A nil pacer allows everything.
type pacer struct {
	limiter *rate.Limiter
	denied  atomic.Uint64
}

// newPacer returns nil when sendsPerSecond is not positive.
func newPacer(sendsPerSecond float64, burst int) *pacer {
	if sendsPerSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &pacer{
		limiter: rate.NewLimiter(rate.Limit(sendsPerSecond), burst),
	}
}

// allow consumes one send token if available.
func (p *pacer) allow() bool {
	if p == nil {
		return true
	}
	if p.limiter.Allow() {
		return true
	}
	p.denied.Add(1)
	return false
}

func (p *pacer) deniedCount() uint64 {
	if p == nil {
		return 0
	}
	return p.denied.Load()
}
