package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/storefront/internal/logx"
)

var ErrLoopStopped = errors.New("storefront loop stopped")

// Loop runs every state transition of every visitor session on a single
// goroutine, in the order they arrive.
type Loop struct {
	actions chan func()
	stopped chan struct{}
}

func NewLoop() *Loop {
	return &Loop{
		actions: make(chan func()),
		stopped: make(chan struct{}),
	}
}

// Run executes actions until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)
	log := logx.Component("loop")
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.actions:
			if err := safely(fn); err != nil {
				log.Error().Err(err).Msg("action panicked")
			}
		}
	}
}

// Do hands fn to the loop and waits until it has run. Once accepted, fn runs
// to completion even if ctx ends meanwhile.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case l.actions <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrLoopStopped
	}
	<-done
	return nil
}

// Stopped is closed once Run has returned.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stopped
}

func safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}
