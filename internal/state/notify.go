package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"examdesk/internal/types"
)

// DefaultNotificationTTL is how long a pushed notification stays visible
// before it dismisses itself.
const DefaultNotificationTTL = 3500 * time.Millisecond

// Notifier is the process-wide sink for transient user-facing messages plus
// the single overwritable "most recent error" slot. Each pushed notification
// owns a cancellable auto-dismiss timer; the registry guarantees a timer is
// stopped on manual dismissal and that Close stops every outstanding timer so
// none can fire into a later queue incarnation.
type Notifier struct {
	ttl time.Duration

	mu        sync.Mutex
	queue     []types.Notification
	timers    map[string]*time.Timer
	globalErr string
	onChange  func()
	closed    bool
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{
		ttl:    ttl,
		timers: map[string]*time.Timer{},
	}
}

// Subscribe registers a single callback invoked after every queue or slot
// change. Auto-dismiss timers fire off the event loop; the subscriber is how
// the UI learns it needs to repaint.
func (n *Notifier) Subscribe(fn func()) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

// Push appends a notification with a fresh id, schedules its auto-dismissal,
// and returns the id. Queue order is insertion order, oldest first.
func (n *Notifier) Push(kind types.NotificationKind, message string) string {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ""
	}
	id := uuid.NewString()
	n.queue = append(n.queue, types.Notification{ID: id, Kind: kind, Message: message})
	n.timers[id] = time.AfterFunc(n.ttl, func() {
		n.Dismiss(id)
	})
	n.mu.Unlock()
	n.notifyChange()
	return id
}

// Dismiss removes the notification and cancels its pending timer. Dismissing
// an unknown id is a no-op, so a manual dismissal racing the auto-dismiss
// never double-fires.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	timer, known := n.timers[id]
	if !known {
		n.mu.Unlock()
		return
	}
	timer.Stop()
	delete(n.timers, id)
	for i, item := range n.queue {
		if item.ID == id {
			n.queue = append(n.queue[:i], n.queue[i+1:]...)
			break
		}
	}
	n.mu.Unlock()
	n.notifyChange()
}

func (n *Notifier) Notifications() []types.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]types.Notification{}, n.queue...)
}

// SetGlobalError overwrites the ambient error slot. It is independent of the
// queue: the slot has no timer and survives until the next overwrite. Pass
// the empty string to clear.
func (n *Notifier) SetGlobalError(msg string) {
	n.mu.Lock()
	n.globalErr = msg
	n.mu.Unlock()
	n.notifyChange()
}

func (n *Notifier) GlobalError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.globalErr
}

// Close tears the queue down: every pending timer is stopped together and
// further pushes are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
	n.queue = nil
	n.onChange = nil
}

func (n *Notifier) notifyChange() {
	n.mu.Lock()
	fn := n.onChange
	n.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *Store) Notify(kind types.NotificationKind, message string) string {
	return s.notifier.Push(kind, message)
}

func (s *Store) DismissNotification(id string) {
	s.notifier.Dismiss(id)
}

func (s *Store) Notifications() []types.Notification {
	return s.notifier.Notifications()
}

func (s *Store) SetGlobalError(msg string) {
	s.notifier.SetGlobalError(msg)
}

func (s *Store) GlobalError() string {
	return s.notifier.GlobalError()
}
