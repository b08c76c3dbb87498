// Package extidlenotify implements the client side of the
// ext-idle-notify-v1 protocol
package extidlenotify

import (
	"github.com/neurlang/wayland/wl"
)

// Basic type aliases for compatibility
type BaseProxy = wl.BaseProxy
type Event = wl.Event
type Context = wl.Context
type Proxy = wl.Proxy
type WlSeat = wl.Seat

// BindIdleNotifier binds to the ext_idle_notifier_v1 interface
func BindIdleNotifier(r *wl.Registry, name uint32, version uint32) *IdleNotifier {
	// Get the context from the registry
	ctx, _ := wl.GetUserData[wl.Context](r)

	// Create a new notifier instance
	notifier := NewIdleNotifier(ctx)

	// Bind it to the interface
	_ = r.Bind(name, "ext_idle_notifier_v1", version, notifier)

	return notifier
}

// Helper functions to add listeners

// IdleNotifierAddListener adds a listener for idle notifier events
// No events for the notifier currently
func IdleNotifierAddListener(n *IdleNotifier, h interface{}) {
	// No events to listen for
}

// IdleNotificationAddListener adds all listeners for idle notification events
func IdleNotificationAddListener(n *IdleNotification, h interface{}) {
	if handler, ok := h.(IdleNotificationIdledHandler); ok {
		n.AddIdledHandler(handler)
	}
	if handler, ok := h.(IdleNotificationResumedHandler); ok {
		n.AddResumedHandler(handler)
	}
}
