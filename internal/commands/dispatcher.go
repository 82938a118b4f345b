package commands

import (
	"context"
	"fmt"
	"sync"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// Subscription allows callers to tear down dispatcher subscriptions.
type Subscription interface {
	Unsubscribe()
}

// Subscriber is implemented by handlers that can bind themselves to the
// go-command dispatcher for their own message type.
type Subscriber interface {
	Subscribe(opts ...runner.Option) Subscription
}

// Subscribe binds a typed commander to the global go-command dispatcher.
func Subscribe[T command.Message](handler command.Commander[T], opts ...runner.Option) Subscription {
	return dispatcher.SubscribeCommand(handler, opts...)
}

// Dispatch routes msg to the handler subscribed for its type.
func Dispatch[T command.Message](ctx context.Context, msg T) error {
	return dispatcher.Dispatch(EnsureContext(ctx), msg)
}

// Dispatcher registers handlers with the go-command dispatcher and keeps their
// subscriptions so they can be released together.
type Dispatcher struct {
	opts []runner.Option

	mu   sync.Mutex
	subs []Subscription
}

// NewDispatcher builds a Dispatcher whose subscriptions retry failed
// executions up to retries times.
func NewDispatcher(retries int) *Dispatcher {
	d := &Dispatcher{}
	if retries > 0 {
		d.opts = append(d.opts, runner.WithMaxRetries(retries))
	}
	return d
}

// RegisterCommand subscribes handler. It fails for values that cannot subscribe themselves.
func (d *Dispatcher) RegisterCommand(handler any) (Subscription, error) {
	subscriber, ok := handler.(Subscriber)
	if !ok {
		return nil, fmt.Errorf("commands: handler %T cannot be subscribed", handler)
	}
	sub := subscriber.Subscribe(d.opts...)

	d.mu.Lock()
	d.subs = append(d.subs, sub)
	d.mu.Unlock()
	return sub, nil
}

// Close releases every subscription made through d.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	subs := d.subs
	d.subs = nil
	d.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
