package fixtures

import "github.com/goliatone/go-olist/internal/commands"

// RecordingRegistry captures command handlers passed to RegisterCommand.
type RecordingRegistry struct {
	Handlers []any
	err      error
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// Fail configures the recorder to reject every registration with err.
func (r *RecordingRegistry) Fail(err error) {
	r.err = err
}

// RegisterCommand records the handler and returns a no-op subscription.
func (r *RecordingRegistry) RegisterCommand(handler any) (commands.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.Handlers = append(r.Handlers, handler)
	return noopSubscription{}, nil
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}
