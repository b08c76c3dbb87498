// Package extidlenotify implements the client side of the
// ext-idle-notify-v1 protocol
package extidlenotify

import (
	"sync"
	// wl is used indirectly through type aliases
	"github.com/neurlang/wayland/wl"
)

// Use the wl package explicitly in type declarations to avoid the "imported and not used" error
var _ wl.BaseProxy // This line ensures the wl package is used

// Protocol request constants for ext_idle_notifier_v1
const (
	NotifierRequestDestroy uint32 = iota
	NotifierRequestGetIdleNotification
)

// Protocol request constants for ext_idle_notification_v1
const (
	NotificationRequestDestroy uint32 = iota
)

// Protocol event constants for ext_idle_notification_v1
const (
	NotificationEventIdled uint32 = iota
	NotificationEventResumed
)

// IdleNotifier represents an ext_idle_notifier_v1 object
type IdleNotifier struct {
	BaseProxy
}

// NewIdleNotifier is a constructor for the IdleNotifier object
func NewIdleNotifier(ctx *Context) *IdleNotifier {
	ret := new(IdleNotifier)
	ctx.Register(ret)
	return ret
}

// Destroy destroys the idle notifier object
func (n *IdleNotifier) Destroy() error {
	return n.Context().SendRequest(n, NotifierRequestDestroy)
}

// GetIdleNotification creates a notification that fires after the seat has
// seen no activity for timeout milliseconds. The compositor re-arms the
// notification after every idled/resumed cycle.
func (n *IdleNotifier) GetIdleNotification(timeout uint32, seat *WlSeat) (*IdleNotification, error) {
	retId := NewIdleNotification(n.Context())
	return retId, n.Context().SendRequest(n, NotifierRequestGetIdleNotification, retId, timeout, seat)
}

// Dispatch dispatches event for IdleNotifier
func (n *IdleNotifier) Dispatch(event *Event) {
	// No events to dispatch for the notifier
}

// IdleNotification represents an ext_idle_notification_v1 object
type IdleNotification struct {
	BaseProxy
	mu                             sync.RWMutex
	privateIdleNotificationIdled   []IdleNotificationIdledHandler
	privateIdleNotificationResumed []IdleNotificationResumedHandler
}

// NewIdleNotification is a constructor for the IdleNotification object
func NewIdleNotification(ctx *Context) *IdleNotification {
	ret := new(IdleNotification)
	ctx.Register(ret)
	return ret
}

// Destroy destroys the idle notification object
func (n *IdleNotification) Destroy() error {
	return n.Context().SendRequest(n, NotificationRequestDestroy)
}

// Dispatch dispatches event for IdleNotification
func (n *IdleNotification) Dispatch(event *Event) {
	switch event.Opcode {
	case NotificationEventIdled:
		if len(n.privateIdleNotificationIdled) > 0 {
			ev := IdleNotificationIdledEvent{}
			n.mu.RLock()
			for _, h := range n.privateIdleNotificationIdled {
				h.HandleIdleNotificationIdled(ev)
			}
			n.mu.RUnlock()
		}
	case NotificationEventResumed:
		if len(n.privateIdleNotificationResumed) > 0 {
			ev := IdleNotificationResumedEvent{}
			n.mu.RLock()
			for _, h := range n.privateIdleNotificationResumed {
				h.HandleIdleNotificationResumed(ev)
			}
			n.mu.RUnlock()
		}
	}
}

// IdleNotificationIdledEvent represents the idled event
type IdleNotificationIdledEvent struct {
}

// IdleNotificationResumedEvent represents the resumed event
type IdleNotificationResumedEvent struct {
}

// IdleNotificationIdledHandler is the handler interface for IdleNotificationIdledEvent
type IdleNotificationIdledHandler interface {
	HandleIdleNotificationIdled(IdleNotificationIdledEvent)
}

// AddIdledHandler adds the Idled handler
func (n *IdleNotification) AddIdledHandler(h IdleNotificationIdledHandler) {
	if h != nil {
		n.mu.Lock()
		n.privateIdleNotificationIdled = append(n.privateIdleNotificationIdled, h)
		n.mu.Unlock()
	}
}

// RemoveIdledHandler removes the Idled handler
func (n *IdleNotification) RemoveIdledHandler(h IdleNotificationIdledHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, e := range n.privateIdleNotificationIdled {
		if e == h {
			n.privateIdleNotificationIdled = append(n.privateIdleNotificationIdled[:i], n.privateIdleNotificationIdled[i+1:]...)
			break
		}
	}
}

// IdleNotificationResumedHandler is the handler interface for IdleNotificationResumedEvent
type IdleNotificationResumedHandler interface {
	HandleIdleNotificationResumed(IdleNotificationResumedEvent)
}

// AddResumedHandler adds the Resumed handler
func (n *IdleNotification) AddResumedHandler(h IdleNotificationResumedHandler) {
	if h != nil {
		n.mu.Lock()
		n.privateIdleNotificationResumed = append(n.privateIdleNotificationResumed, h)
		n.mu.Unlock()
	}
}

// RemoveResumedHandler removes the Resumed handler
func (n *IdleNotification) RemoveResumedHandler(h IdleNotificationResumedHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, e := range n.privateIdleNotificationResumed {
		if e == h {
			n.privateIdleNotificationResumed = append(n.privateIdleNotificationResumed[:i], n.privateIdleNotificationResumed[i+1:]...)
			break
		}
	}
}
