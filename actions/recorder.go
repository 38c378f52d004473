package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid"
)

// ErrUnknownBinding is returned when invoking an ID that has no bound handler
var ErrUnknownBinding = errors.New("unknown action binding")

const (
	DefaultActionCapacity  = 100
	DefaultBindingCapacity = 1000
)

// RecorderOptions configures a Recorder
type RecorderOptions struct {
	// BindingCapacity is the maximum number of bindings kept, the oldest is evicted first.
	// Default: DefaultBindingCapacity
	BindingCapacity uint64
	// NotifierOptions configures the notifier for new actions.
	// Default: nil, will use DefaultNotifierOptions()
	NotifierOptions *NotifierOptions
	// Logger logs invocations. Default: slog.Default()
	Logger *slog.Logger
	// Now returns the current time. Default: time.Now
	Now func() time.Time
}

// Recorder binds click handlers and records their invocations
type Recorder struct {
	bindings *bindingTable
	log      *actionLog
	notifier *Notifier[Action]
	logger   *slog.Logger
	now      func() time.Time
}

// NewRecorder creates a recorder keeping DefaultActionCapacity actions
func NewRecorder() *Recorder {
	return NewRecorderWithOptions(DefaultActionCapacity, RecorderOptions{})
}

// NewRecorderWithOptions creates a recorder keeping the last capacity actions.
// A capacity of 0 uses DefaultActionCapacity.
func NewRecorderWithOptions(capacity uint64, options RecorderOptions) *Recorder {
	if capacity == 0 {
		capacity = DefaultActionCapacity
	}
	bindingCapacity := options.BindingCapacity
	if bindingCapacity == 0 {
		bindingCapacity = DefaultBindingCapacity
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	notifierOptions := DefaultNotifierOptions()
	if options.NotifierOptions != nil {
		notifierOptions = *options.NotifierOptions
	}
	if notifierOptions.Logger == nil {
		notifierOptions.Logger = logger
	}

	now := options.Now
	if now == nil {
		now = time.Now
	}

	return &Recorder{
		bindings: newBindingTable(bindingCapacity),
		log:      newActionLog(capacity),
		notifier: NewNotifierWithOptions[Action](notifierOptions),
		logger:   logger,
		now:      now,
	}
}

// Bind registers handler for the button with label in a story and returns its binding ID.
// Binding the same story and label again replaces the handler and returns the same ID.
func (r *Recorder) Bind(storyID, label string, handler func()) uuid.UUID {
	id := BindingID(storyID, label)
	r.bindings.put(Binding{
		ID:      id,
		StoryID: storyID,
		Label:   label,
		Handler: handler,
	})
	return id
}

// Lookup returns the binding for an ID
func (r *Recorder) Lookup(id uuid.UUID) (Binding, bool) {
	return r.bindings.get(id)
}

// Invoke calls the handler bound to id once and records the action
func (r *Recorder) Invoke(ctx context.Context, id uuid.UUID) (Action, error) {
	binding, found := r.bindings.get(id)
	if !found {
		return Action{}, fmt.Errorf("invoking %s: %w", id, ErrUnknownBinding)
	}

	if binding.Handler != nil {
		binding.Handler()
	}

	action := Action{
		ID:        uuid.Must(uuid.NewV4()),
		BindingID: binding.ID,
		StoryID:   binding.StoryID,
		Label:     binding.Label,
		Time:      r.now(),
	}
	r.log.add(action)
	r.notifier.Notify(action)

	r.logger.DebugContext(ctx, "Invoked action",
		slog.String("story", binding.StoryID),
		slog.String("label", binding.Label),
		slog.String("action", action.ID.String()),
	)

	return action, nil
}

// RecentActions returns up to limit of the most recent actions, newest first.
// With a storyID only the actions of that story are returned.
func (r *Recorder) RecentActions(storyID string, limit uint64) []Action {
	return r.log.recent(storyID, limit)
}

// Capacity returns the number of actions kept
func (r *Recorder) Capacity() uint64 {
	return r.log.capacity()
}

// Subscribe returns a channel receiving every new action until ctx is done
func (r *Recorder) Subscribe(ctx context.Context) <-chan Action {
	return r.notifier.Subscribe(ctx)
}

// Close stops notifications and closes all subscriptions
func (r *Recorder) Close() {
	r.notifier.Close()
}
