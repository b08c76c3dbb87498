// Package wlrlayershell implements the client side of the
// wlr-layer-shell-unstable-v1 protocol
package wlrlayershell

import (
	"github.com/neurlang/wayland/wl"
)

// Basic type aliases for compatibility
type BaseProxy = wl.BaseProxy
type Event = wl.Event
type Context = wl.Context
type Proxy = wl.Proxy
type WlSurface = wl.Surface
type WlOutput = wl.Output

// BindLayerShell binds to the zwlr_layer_shell_v1 interface
func BindLayerShell(r *wl.Registry, name uint32, version uint32) *LayerShell {
	// Get the context from the registry
	ctx, _ := wl.GetUserData[wl.Context](r)

	// Create a new layer shell instance
	shell := NewLayerShell(ctx)

	// Bind it to the interface
	_ = r.Bind(name, "zwlr_layer_shell_v1", version, shell)

	return shell
}

// Helper functions to add listeners

// LayerShellAddListener adds a listener for layer shell events
// No events for the shell currently
func LayerShellAddListener(s *LayerShell, h interface{}) {
	// No events to listen for
}

// LayerSurfaceAddListener adds all listeners for layer surface events
func LayerSurfaceAddListener(s *LayerSurface, h interface{}) {
	if handler, ok := h.(LayerSurfaceConfigureHandler); ok {
		s.AddConfigureHandler(handler)
	}
	if handler, ok := h.(LayerSurfaceClosedHandler); ok {
		s.AddClosedHandler(handler)
	}
}
