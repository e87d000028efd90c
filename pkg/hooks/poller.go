package hooks

import (
	"context"
	"sync"
	"time"
)

// Poller calls fetch every interval between Start and Stop and keeps the
// latest result. The first fetch happens right away.
type Poller[T any] struct {
	interval time.Duration
	fetch    func(context.Context) (T, error)
	onResult func(T, error)

	mu      sync.Mutex
	latest  T
	err     error
	fetched bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewPoller[T any](interval time.Duration, fetch func(context.Context) (T, error), onResult func(T, error)) *Poller[T] {
	return &Poller[T]{interval: interval, fetch: fetch, onResult: onResult}
}

// Start begins polling until Stop or until ctx ends. It is a no-op while
// already polling.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel, p.done = cancel, done
	go p.run(ctx, done)
}

func (p *Poller[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer p.release(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		p.poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// release clears the running state when the loop started with done exits on
// its own, so a cancelled parent context leaves the poller restartable.
func (p *Poller[T]) release(done chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == done {
		p.cancel()
		p.cancel, p.done = nil, nil
	}
}

// halt cancels polling without waiting, so it is safe from onResult.
func (p *Poller[T]) halt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel, p.done = nil, nil
	}
}

func (p *Poller[T]) poll(ctx context.Context) {
	value, err := p.fetch(ctx)
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	p.latest, p.err, p.fetched = value, err, true
	p.mu.Unlock()

	if p.onResult != nil {
		p.onResult(value, err)
	}
}

// Stop ends polling and waits for an in-flight fetch to return.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (p *Poller[T]) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Latest returns the last result and whether any fetch has completed.
func (p *Poller[T]) Latest() (T, error, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest, p.err, p.fetched
}
