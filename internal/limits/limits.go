// Package limits guards a tool with a lifetime call budget and a per-minute rate.
package limits

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Denial reasons.
const (
	ReasonMaxTotal  = "Maximum number of calls exceeded"
	ReasonRateLimit = "Rate limit exceeded"
)

// Decision is the outcome of a limit check.
type Decision struct {
	// Allowed reports whether the call may proceed.
	Allowed bool
	// Reason explains a denial.
	Reason string
}

// Limiter tracks usage of a single tool. A nil Limiter allows everything.
type Limiter struct {
	mu       sync.Mutex
	count    int
	maxTotal int
	limiter  *rate.Limiter
	now      func() time.Time
}

// New returns a limiter, or nil when both limits are disabled.
func New(maxTotal, ratePerMinute int) *Limiter {
	if maxTotal <= 0 && ratePerMinute <= 0 {
		return nil
	}
	l := &Limiter{maxTotal: maxTotal, now: time.Now}
	if ratePerMinute > 0 {
		l.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), ratePerMinute)
	}
	return l
}

// Allow consumes one call if both limits permit it.
func (l *Limiter) Allow() Decision {
	if l == nil {
		return Decision{Allowed: true}
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.maxTotal > 0 && l.count >= l.maxTotal {
		return Decision{Reason: ReasonMaxTotal}
	}
	if l.limiter != nil && !l.limiter.AllowN(l.now(), 1) {
		return Decision{Reason: ReasonRateLimit}
	}
	l.count++
	return Decision{Allowed: true}
}

// Count returns the number of allowed calls so far.
func (l *Limiter) Count() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
