// Package event is an in-process dispatcher for domain events such as
// order.created. Listeners run synchronously with Fire or on their own
// goroutine with FireAsync.
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/hpfoods/hpfoods-api/pkg/logger"
)

// OrderCreated is fired after an order and its detail lines commit.
const OrderCreated = "order.created"

// Listener receives an event payload. A returned error is logged.
type Listener func(ctx context.Context, payload any) error

var (
	mu        sync.RWMutex
	listeners = map[string][]Listener{}
	inflight  sync.WaitGroup
)

// Listen registers l for name.
func Listen(name string, l Listener) {
	mu.Lock()
	defer mu.Unlock()
	listeners[name] = append(listeners[name], l)
}

func snapshot(name string) []Listener {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Listener(nil), listeners[name]...)
}

// Fire runs every listener for name in registration order and returns
// the first error.
func Fire(ctx context.Context, name string, payload any) error {
	for _, l := range snapshot(name) {
		if err := call(ctx, name, l, payload); err != nil {
			return err
		}
	}
	return nil
}

// FireAsync starts every listener for name on its own goroutine and
// returns immediately. Listeners outlive the request: ctx values are kept
// but its cancellation is dropped.
func FireAsync(ctx context.Context, name string, payload any) {
	detached := context.WithoutCancel(ctx)
	for _, l := range snapshot(name) {
		inflight.Add(1)
		go func(l Listener) {
			defer inflight.Done()
			if err := call(detached, name, l, payload); err != nil {
				logger.WithCtx(detached).Warn("event listener failed", "event", name, "error", err)
			}
		}(l)
	}
}

// Wait blocks until every FireAsync listener has returned.
func Wait() { inflight.Wait() }

// Flush removes all listeners.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	listeners = map[string][]Listener{}
}

func call(ctx context.Context, name string, l Listener, payload any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("event %s: listener panic: %v", name, rec)
		}
	}()
	return l(ctx, payload)
}
