package internal

import (
	"github.com/hdsch/blkout/wlrlayershell"
)

var _ wlrlayershell.LayerSurfaceConfigureHandler = (*Overlay)(nil)
var _ wlrlayershell.LayerSurfaceClosedHandler = (*Overlay)(nil)

// overlayState tracks where the overlay is in its lifecycle.
type overlayState int

const (
	// overlayHidden: no surface objects exist.
	overlayHidden overlayState = iota
	// overlayConfiguring: the surface pair exists and the compositor has
	// been asked for a size. No buffer may be attached yet.
	overlayConfiguring
	// overlayVisible: a black buffer is attached and committed.
	overlayVisible
)

// surfaceBackend is the slice of compositor plumbing the overlay controller
// drives. Session implements it against the live Wayland connection; tests
// substitute a fake.
type surfaceBackend interface {
	createOverlaySurface(o *Overlay) error
	ackConfigure(serial uint32) error
	attachBlackBuffer(width, height uint32) error
	destroyOverlaySurface()
}

// Overlay is the blackout surface lifecycle state machine. Every transition
// runs on the single dispatch thread, inside a listener callback.
type Overlay struct {
	backend surfaceBackend

	state  overlayState
	width  uint32
	height uint32

	exitOnHide bool   // exit the run after the first hide
	reshow     bool   // no timeout configured: reopen right after a hide
	shutdown   func() // clears the session's running flag
}

// NewOverlay creates the controller for the blackout surface. shutdown is
// invoked for the exit-on-hide policy and for fatal runtime errors.
func NewOverlay(backend surfaceBackend, config Config, shutdown func()) *Overlay {
	return &Overlay{
		backend:    backend,
		state:      overlayHidden,
		exitOnHide: config.ExitOnHide,
		reshow:     config.TimeoutMS == 0,
		shutdown:   shutdown,
	}
}

// Show creates the surface pair and requests a size from the compositor.
// A no-op unless the overlay is hidden.
func (o *Overlay) Show() {
	if o.state != overlayHidden {
		return
	}

	if err := o.backend.createOverlaySurface(o); err != nil {
		Error("Failed to create overlay surface: %v", err)
		o.shutdown()
		return
	}

	o.state = overlayConfiguring
	Debug("Overlay surface created, waiting for configure")
}

// HandleLayerSurfaceConfigure records the proposed size, acknowledges the
// configure and puts a fresh black buffer on screen. A configure that arrives
// after the surface was torn down is dropped entirely: acknowledging a
// destroyed surface would be a protocol error.
func (o *Overlay) HandleLayerSurfaceConfigure(ev wlrlayershell.LayerSurfaceConfigureEvent) {
	if o.state == overlayHidden {
		return
	}

	o.width = ev.Width
	o.height = ev.Height

	if err := o.backend.ackConfigure(ev.Serial); err != nil {
		Error("Failed to acknowledge configure: %v", err)
	}

	// First configure and compositor-driven resizes take the same path: the
	// backend replaces whatever buffer was attached with a fresh one at the
	// proposed size.
	if err := o.backend.attachBlackBuffer(ev.Width, ev.Height); err != nil {
		Error("Failed to create overlay buffer: %v", err)
		o.shutdown()
		return
	}

	o.state = overlayVisible
	Debug("Overlay visible at %dx%d", ev.Width, ev.Height)
}

// HandleLayerSurfaceClosed handles the compositor revoking the surface, for
// example when the output it was placed on disappears.
func (o *Overlay) HandleLayerSurfaceClosed(ev wlrlayershell.LayerSurfaceClosedEvent) {
	Debug("Layer surface closed by compositor")
	o.Hide()
}

// Hide tears the overlay down and applies the close policy. A no-op when
// already hidden, which makes a burst of input events dismiss exactly once.
// State is reset before anything is destroyed: some compositors emit closed
// for a surface mid-destruction, and that callback must already observe the
// overlay as hidden.
func (o *Overlay) Hide() {
	if o.state == overlayHidden {
		return
	}
	o.state = overlayHidden
	o.width = 0
	o.height = 0

	o.backend.destroyOverlaySurface()

	if o.exitOnHide {
		o.shutdown()
		return
	}

	// Zero-timeout mode keeps the screen black whenever the user is not
	// actively providing input: the overlay goes straight back up and the
	// next input event knocks it down again. With a timeout the idle watch
	// re-fires on its own after the next period of inactivity.
	if o.reshow {
		o.Show()
	}
}

// Visible reports whether the overlay currently holds surface objects.
func (o *Overlay) Visible() bool {
	return o.state != overlayHidden
}
