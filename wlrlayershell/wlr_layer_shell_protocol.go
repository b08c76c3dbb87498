// Package wlrlayershell implements the client side of the
// wlr-layer-shell-unstable-v1 protocol
package wlrlayershell

import (
	"sync"
	// wl is used indirectly through type aliases
	"github.com/neurlang/wayland/wl"
)

// Use the wl package explicitly in type declarations to avoid the "imported and not used" error
var _ wl.BaseProxy // This line ensures the wl package is used

// Layer constants for zwlr_layer_shell_v1
const (
	LayerBackground uint32 = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

// Anchor constants for zwlr_layer_surface_v1
const (
	AnchorTop    uint32 = 1
	AnchorBottom uint32 = 2
	AnchorLeft   uint32 = 4
	AnchorRight  uint32 = 8
)

// Keyboard interactivity constants for zwlr_layer_surface_v1
const (
	KeyboardInteractivityNone uint32 = iota
	KeyboardInteractivityExclusive
	KeyboardInteractivityOnDemand
)

// Error constants for zwlr_layer_shell_v1
const (
	ShellErrorRole uint32 = iota
	ShellErrorInvalidLayer
	ShellErrorAlreadyConstructed
)

// Error constants for zwlr_layer_surface_v1
const (
	SurfaceErrorInvalidSurfaceState uint32 = iota
	SurfaceErrorInvalidSize
	SurfaceErrorInvalidAnchor
	SurfaceErrorInvalidKeyboardInteractivity
)

// Protocol request constants for zwlr_layer_shell_v1
const (
	ShellRequestGetLayerSurface uint32 = iota
	ShellRequestDestroy
)

// Protocol request constants for zwlr_layer_surface_v1.
// SurfaceRequestGetPopup takes an xdg_popup argument; this binding declares
// the opcode so the request table matches the wire protocol, but binds no
// xdg_popup type and never sends the request — popups are outside anything a
// layer-shell client of this kind needs.
const (
	SurfaceRequestSetSize uint32 = iota
	SurfaceRequestSetAnchor
	SurfaceRequestSetExclusiveZone
	SurfaceRequestSetMargin
	SurfaceRequestSetKeyboardInteractivity
	SurfaceRequestGetPopup
	SurfaceRequestAckConfigure
	SurfaceRequestDestroy
	SurfaceRequestSetLayer
)

// Protocol event constants for zwlr_layer_surface_v1
const (
	SurfaceEventConfigure uint32 = iota
	SurfaceEventClosed
)

// LayerShell represents a zwlr_layer_shell_v1 object
type LayerShell struct {
	BaseProxy
}

// NewLayerShell is a constructor for the LayerShell object
func NewLayerShell(ctx *Context) *LayerShell {
	ret := new(LayerShell)
	ctx.Register(ret)
	return ret
}

// GetLayerSurface creates a layer surface for an existing surface. A nil
// output lets the compositor pick one.
func (s *LayerShell) GetLayerSurface(surface *WlSurface, output *WlOutput, layer uint32, namespace string) (*LayerSurface, error) {
	retId := NewLayerSurface(s.Context())
	return retId, s.Context().SendRequest(s, ShellRequestGetLayerSurface, retId, surface, output, layer, namespace)
}

// Destroy destroys the layer shell object
func (s *LayerShell) Destroy() error {
	return s.Context().SendRequest(s, ShellRequestDestroy)
}

// Dispatch dispatches event for LayerShell
func (s *LayerShell) Dispatch(event *Event) {
	// No events to dispatch for the shell
}

// LayerSurface represents a zwlr_layer_surface_v1 object
type LayerSurface struct {
	BaseProxy
	mu                           sync.RWMutex
	privateLayerSurfaceConfigure []LayerSurfaceConfigureHandler
	privateLayerSurfaceClosed    []LayerSurfaceClosedHandler
}

// NewLayerSurface is a constructor for the LayerSurface object
func NewLayerSurface(ctx *Context) *LayerSurface {
	ret := new(LayerSurface)
	ctx.Register(ret)
	return ret
}

// SetSize sets the requested surface size; zero lets the compositor assign
// the dimension based on the anchors
func (s *LayerSurface) SetSize(width, height uint32) error {
	return s.Context().SendRequest(s, SurfaceRequestSetSize, width, height)
}

// SetAnchor anchors the surface to the given screen edges
func (s *LayerSurface) SetAnchor(anchor uint32) error {
	return s.Context().SendRequest(s, SurfaceRequestSetAnchor, anchor)
}

// SetExclusiveZone requests an exclusive zone; -1 makes the surface extend
// over other layer surfaces such as panels
func (s *LayerSurface) SetExclusiveZone(zone int32) error {
	return s.Context().SendRequest(s, SurfaceRequestSetExclusiveZone, zone)
}

// SetMargin sets the margins from the anchored edges
func (s *LayerSurface) SetMargin(top, right, bottom, left int32) error {
	return s.Context().SendRequest(s, SurfaceRequestSetMargin, top, right, bottom, left)
}

// SetKeyboardInteractivity sets how keyboard focus is delivered to the surface
func (s *LayerSurface) SetKeyboardInteractivity(mode uint32) error {
	return s.Context().SendRequest(s, SurfaceRequestSetKeyboardInteractivity, mode)
}

// AckConfigure acknowledges a configure event
func (s *LayerSurface) AckConfigure(serial uint32) error {
	return s.Context().SendRequest(s, SurfaceRequestAckConfigure, serial)
}

// Destroy destroys the layer surface object
func (s *LayerSurface) Destroy() error {
	return s.Context().SendRequest(s, SurfaceRequestDestroy)
}

// SetLayer moves the surface to another shell layer
func (s *LayerSurface) SetLayer(layer uint32) error {
	return s.Context().SendRequest(s, SurfaceRequestSetLayer, layer)
}

// Dispatch dispatches event for LayerSurface
func (s *LayerSurface) Dispatch(event *Event) {
	switch event.Opcode {
	case SurfaceEventConfigure:
		if len(s.privateLayerSurfaceConfigure) > 0 {
			ev := LayerSurfaceConfigureEvent{}
			ev.Serial = event.Uint32()
			ev.Width = event.Uint32()
			ev.Height = event.Uint32()
			s.mu.RLock()
			for _, h := range s.privateLayerSurfaceConfigure {
				h.HandleLayerSurfaceConfigure(ev)
			}
			s.mu.RUnlock()
		}
	case SurfaceEventClosed:
		if len(s.privateLayerSurfaceClosed) > 0 {
			ev := LayerSurfaceClosedEvent{}
			s.mu.RLock()
			for _, h := range s.privateLayerSurfaceClosed {
				h.HandleLayerSurfaceClosed(ev)
			}
			s.mu.RUnlock()
		}
	}
}

// LayerSurfaceConfigureEvent represents the configure event
type LayerSurfaceConfigureEvent struct {
	Serial uint32
	Width  uint32
	Height uint32
}

// LayerSurfaceClosedEvent represents the closed event
type LayerSurfaceClosedEvent struct {
}

// LayerSurfaceConfigureHandler is the handler interface for LayerSurfaceConfigureEvent
type LayerSurfaceConfigureHandler interface {
	HandleLayerSurfaceConfigure(LayerSurfaceConfigureEvent)
}

// AddConfigureHandler adds the Configure handler
func (s *LayerSurface) AddConfigureHandler(h LayerSurfaceConfigureHandler) {
	if h != nil {
		s.mu.Lock()
		s.privateLayerSurfaceConfigure = append(s.privateLayerSurfaceConfigure, h)
		s.mu.Unlock()
	}
}

// RemoveConfigureHandler removes the Configure handler
func (s *LayerSurface) RemoveConfigureHandler(h LayerSurfaceConfigureHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.privateLayerSurfaceConfigure {
		if e == h {
			s.privateLayerSurfaceConfigure = append(s.privateLayerSurfaceConfigure[:i], s.privateLayerSurfaceConfigure[i+1:]...)
			break
		}
	}
}

// LayerSurfaceClosedHandler is the handler interface for LayerSurfaceClosedEvent
type LayerSurfaceClosedHandler interface {
	HandleLayerSurfaceClosed(LayerSurfaceClosedEvent)
}

// AddClosedHandler adds the Closed handler
func (s *LayerSurface) AddClosedHandler(h LayerSurfaceClosedHandler) {
	if h != nil {
		s.mu.Lock()
		s.privateLayerSurfaceClosed = append(s.privateLayerSurfaceClosed, h)
		s.mu.Unlock()
	}
}

// RemoveClosedHandler removes the Closed handler
func (s *LayerSurface) RemoveClosedHandler(h LayerSurfaceClosedHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.privateLayerSurfaceClosed {
		if e == h {
			s.privateLayerSurfaceClosed = append(s.privateLayerSurfaceClosed[:i], s.privateLayerSurfaceClosed[i+1:]...)
			break
		}
	}
}
