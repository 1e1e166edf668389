// Package runner fans a batch of redirect pairs out over a bounded worker
// pool and streams completion progress back to the caller.
package runner

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/oussamac10/redirect-checker/internal/model"
)

// Checker checks a single pair. Satisfied by *checker.Checker.
type Checker interface {
	Check(ctx context.Context, pair model.RedirectPair) model.CheckResult
}

// Config holds settings for the runner.
type Config struct {
	// Workers bounds how many checks run concurrently.
	Workers int

	// RateLimit caps started checks per second across all workers, 0 = unlimited.
	RateLimit int
}

// Runner coordinates concurrent checks.
type Runner struct {
	cfg     Config
	checker Checker
	limiter *rate.Limiter
}

// New creates a Runner, failing fast on invalid configuration.
func New(cfg Config, ch Checker) (*Runner, error) {
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("workers must be greater than zero (got %d)", cfg.Workers)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("rate limit must be >= 0 (got %d)", cfg.RateLimit)
	}
	r := &Runner{cfg: cfg, checker: ch}
	if cfg.RateLimit > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return r, nil
}

// Run processes all pairs and returns one CheckResult per pair, in completion
// order. After each finished pair a Progress event is sent on progress (which
// may be nil); the channel is closed before Run returns, so the caller only
// has to range over it.
func (r *Runner) Run(ctx context.Context, pairs []model.RedirectPair, progress chan<- model.Progress) []model.CheckResult {
	total := len(pairs)
	out := make([]model.CheckResult, 0, total)
	mu := &sync.Mutex{}
	completed := 0

	jobs := make(chan model.RedirectPair)
	wg := sync.WaitGroup{}
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pair := range jobs {
				if r.limiter != nil {
					// A canceled ctx surfaces as a transport error in Check.
					_ = r.limiter.Wait(ctx)
				}
				res := r.checker.Check(ctx, pair)

				// Emitting under the lock keeps progress counts monotonic on
				// the channel; consumers are expected to drain promptly.
				mu.Lock()
				out = append(out, res)
				completed++
				if progress != nil {
					progress <- model.Progress{
						Completed: completed,
						Total:     total,
						Percent:   completed * 100 / total,
					}
				}
				mu.Unlock()
			}
		}()
	}

	for _, p := range pairs {
		select {
		case jobs <- p:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)

	wg.Wait()
	if progress != nil {
		close(progress)
	}
	return out
}
