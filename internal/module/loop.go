package module

import (
	"context"
	"errors"
	"sync"
)

// Loop is a single-consumer task queue. Background work started with Go
// posts its continuation back to the queue, so every continuation runs on
// the goroutine calling RunUntilIdle.
type Loop struct {
	mu       sync.Mutex
	queue    []func() error
	inflight int
	wake     chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// NewLoop creates an idle loop.
func NewLoop() *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loop{
		wake:   make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Post queues a task.
func (l *Loop) Post(task func() error) {
	l.mu.Lock()
	l.queue = append(l.queue, task)
	l.mu.Unlock()
	l.signal()
}

// Go runs work on its own goroutine and queues the continuation it
// returns. work's context is cancelled when RunUntilIdle gives up.
func (l *Loop) Go(work func(ctx context.Context) func() error) {
	l.mu.Lock()
	l.inflight++
	l.mu.Unlock()

	go func() {
		cont := work(l.ctx)

		l.mu.Lock()
		if cont != nil {
			l.queue = append(l.queue, cont)
		}
		l.inflight--
		l.mu.Unlock()
		l.signal()
	}()
}

// RunUntilIdle runs queued tasks until the queue is empty and no
// background work is outstanding. Task errors are joined; ctx ends the
// wait early.
func (l *Loop) RunUntilIdle(ctx context.Context) error {
	var errs []error
	for {
		l.mu.Lock()
		if len(l.queue) > 0 {
			task := l.queue[0]
			l.queue = l.queue[1:]
			l.mu.Unlock()
			if err := task(); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		idle := l.inflight == 0
		l.mu.Unlock()
		if idle {
			return errors.Join(errs...)
		}

		select {
		case <-l.wake:
		case <-ctx.Done():
			l.cancel()
			return errors.Join(append(errs, ctx.Err())...)
		}
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
