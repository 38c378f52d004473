package actions

import (
	"context"
	"log/slog"
	"sync"
)

// Notifier fans out items to subscribers.
// Delivery never blocks the sender: items are dropped for subscribers that are too slow.
type Notifier[T any] struct {
	mu sync.RWMutex
	// subscribers maps the receive side handed out to callers to its sendable channel
	subscribers map[<-chan T]chan T
	bufferSize  int
	notifyCh    chan T
	closeOnce   sync.Once
	closed      bool
	logger      *slog.Logger
}

// NotifierOptions configures a notifier
type NotifierOptions struct {
	// SubscriberBufferSize is the buffer size for each subscriber channel
	SubscriberBufferSize int
	// NotificationBufferSize is the buffer size for the internal notification channel
	NotificationBufferSize int
	// Logger receives debug output about subscriptions. Default: slog.Default()
	Logger *slog.Logger
}

// DefaultNotifierOptions returns default options for a notifier
func DefaultNotifierOptions() NotifierOptions {
	return NotifierOptions{
		SubscriberBufferSize:   100,
		NotificationBufferSize: 1000,
	}
}

// NewNotifier creates a new notifier with default options
func NewNotifier[T any]() *Notifier[T] {
	return NewNotifierWithOptions[T](DefaultNotifierOptions())
}

// NewNotifierWithOptions creates a new notifier with specified options
func NewNotifierWithOptions[T any](options NotifierOptions) *Notifier[T] {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	n := &Notifier[T]{
		subscribers: make(map[<-chan T]chan T),
		bufferSize:  options.SubscriberBufferSize,
		notifyCh:    make(chan T, options.NotificationBufferSize),
		logger:      logger,
	}

	go n.distribute()

	return n
}

// Subscribe returns a channel that receives notifications until ctx is done or the notifier is closed
func (n *Notifier[T]) Subscribe(ctx context.Context) <-chan T {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		ch := make(chan T)
		close(ch)
		return ch
	}
	ch := make(chan T, n.bufferSize)
	n.subscribers[ch] = ch
	count := len(n.subscribers)
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.Unsubscribe(ch)
	}()

	n.logger.Debug("Subscribed to notifier", slog.Int("subscribers", count))

	return ch
}

// Unsubscribe removes a subscription and closes its channel
func (n *Notifier[T]) Unsubscribe(ch <-chan T) {
	n.mu.Lock()
	realCh, exists := n.subscribers[ch]
	if exists {
		delete(n.subscribers, ch)
		close(realCh)
	}
	count := len(n.subscribers)
	n.mu.Unlock()

	if exists {
		n.logger.Debug("Unsubscribed from notifier", slog.Int("subscribers", count))
	}
}

// Notify queues an item for all subscribers, dropping it if the queue is full
func (n *Notifier[T]) Notify(item T) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}

	select {
	case n.notifyCh <- item:
	default:
		n.logger.Debug("Dropped notification, queue is full")
	}
}

// Close closes the notifier and all subscriber channels
func (n *Notifier[T]) Close() {
	n.closeOnce.Do(func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		n.closed = true
		for _, ch := range n.subscribers {
			close(ch)
		}
		n.subscribers = nil
		close(n.notifyCh)
	})
}

func (n *Notifier[T]) distribute() {
	for item := range n.notifyCh {
		n.mu.RLock()
		for _, ch := range n.subscribers {
			select {
			case ch <- item:
			default:
				// slow subscriber
			}
		}
		n.mu.RUnlock()
	}
}
