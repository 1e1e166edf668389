package runner_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/oussamac10/redirect-checker/internal/model"
	"github.com/oussamac10/redirect-checker/internal/runner"
)

// gaugeChecker records the peak number of concurrently running checks.
type gaugeChecker struct {
	mu       sync.Mutex
	inFlight int
	peak     int
	delay    time.Duration
}

func (g *gaugeChecker) Check(ctx context.Context, pair model.RedirectPair) model.CheckResult {
	g.mu.Lock()
	g.inFlight++
	if g.inFlight > g.peak {
		g.peak = g.inFlight
	}
	g.mu.Unlock()

	time.Sleep(g.delay)

	g.mu.Lock()
	g.inFlight--
	g.mu.Unlock()

	return model.CheckResult{Source: pair.Source, Target: pair.Target, Kind: model.StatusOK}
}

func makePairs(n int) []model.RedirectPair {
	pairs := make([]model.RedirectPair, n)
	for i := range pairs {
		pairs[i] = model.RedirectPair{
			Source: fmt.Sprintf("https://old.example.com/p%d", i),
			Target: fmt.Sprintf("https://new.example.com/p%d", i),
		}
	}
	return pairs
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	chk := &gaugeChecker{}
	for _, cfg := range []runner.Config{
		{Workers: 0},
		{Workers: -3},
		{Workers: 5, RateLimit: -1},
	} {
		if _, err := runner.New(cfg, chk); err == nil {
			t.Fatalf("expected error for config %+v", cfg)
		}
	}
}

func TestRunCardinality(t *testing.T) {
	t.Parallel()
	chk := &gaugeChecker{delay: time.Millisecond}
	r, err := runner.New(runner.Config{Workers: 8}, chk)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pairs := makePairs(100)
	results := r.Run(context.Background(), pairs, nil)

	if len(results) != len(pairs) {
		t.Fatalf("expected %d results, got %d", len(pairs), len(results))
	}
	seen := make(map[string]bool, len(results))
	for _, res := range results {
		if seen[res.Source] {
			t.Fatalf("duplicate result for %s", res.Source)
		}
		seen[res.Source] = true
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	t.Parallel()
	const workers = 5
	chk := &gaugeChecker{delay: 5 * time.Millisecond}
	r, err := runner.New(runner.Config{Workers: workers}, chk)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Run(context.Background(), makePairs(60), nil)

	if chk.peak > workers {
		t.Fatalf("concurrency bound violated: peak %d > %d workers", chk.peak, workers)
	}
	if chk.peak < 2 {
		t.Fatalf("expected some parallelism, peak was %d", chk.peak)
	}
}

func TestRunEmitsProgress(t *testing.T) {
	t.Parallel()
	chk := &gaugeChecker{}
	r, err := runner.New(runner.Config{Workers: 4}, chk)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const total = 20
	progress := make(chan model.Progress)
	var events []model.Progress
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range progress {
			events = append(events, ev)
		}
	}()

	r.Run(context.Background(), makePairs(total), progress)
	<-done

	if len(events) != total {
		t.Fatalf("expected %d progress events, got %d", total, len(events))
	}
	for i, ev := range events {
		if ev.Completed != i+1 {
			t.Fatalf("event %d: completed = %d, want %d", i, ev.Completed, i+1)
		}
		if ev.Total != total {
			t.Fatalf("event %d: total = %d, want %d", i, ev.Total, total)
		}
		if want := (i + 1) * 100 / total; ev.Percent != want {
			t.Fatalf("event %d: percent = %d, want %d", i, ev.Percent, want)
		}
	}
	last := events[len(events)-1]
	if last.Percent != 100 {
		t.Fatalf("final event percent = %d, want 100", last.Percent)
	}
}

func TestRunWithRateLimit(t *testing.T) {
	t.Parallel()
	chk := &gaugeChecker{}
	r, err := runner.New(runner.Config{Workers: 4, RateLimit: 1000}, chk)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	results := r.Run(context.Background(), makePairs(10), nil)
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()
	chk := &gaugeChecker{}
	r, err := runner.New(runner.Config{Workers: 3}, chk)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	progress := make(chan model.Progress)
	go func() {
		for range progress {
		}
	}()
	if results := r.Run(context.Background(), nil, progress); len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
