package internal

import (
	"fmt"

	"github.com/neurlang/wayland/wl"
	"github.com/neurlang/wayland/wlclient"

	"github.com/hdsch/blkout/extidlenotify"
	"github.com/hdsch/blkout/wlrlayershell"
)

// overlayNamespace identifies the layer surface to the compositor.
const overlayNamespace = "blkout"

var _ wl.RegistryGlobalHandler = (*Session)(nil)
var _ surfaceBackend = (*Session)(nil)

// Session owns the connection to the compositor and every global bound from
// its registry. All listener callbacks run on the single dispatch thread, so
// none of this state needs locking.
type Session struct {
	config Config

	display  *wl.Display
	registry *wl.Registry

	compositor   *wl.Compositor
	shm          *wl.Shm
	seat         *wl.Seat
	layerShell   *wlrlayershell.LayerShell
	idleNotifier *extidlenotify.IdleNotifier

	keyboard *wl.Keyboard
	pointer  *wl.Pointer

	idleWatch *extidlenotify.IdleNotification

	overlay *Overlay

	// surface objects owned while the overlay is up
	surface      *wl.Surface
	layerSurface *wlrlayershell.LayerSurface
	buf          *ShmBuffer

	running bool
}

// NewSession creates a session for the given settings. Connect must be called
// before Run.
func NewSession(config Config) *Session {
	s := &Session{
		config:  config,
		running: true,
	}
	s.overlay = NewOverlay(s, config, s.stop)
	return s
}

func (s *Session) stop() {
	s.running = false
}

// Connect establishes the compositor connection and binds the globals the
// overlay needs. Two roundtrips: the first delivers the registry
// announcements, the second the seat capability events triggered by the seat
// bind, so input listeners are in place before anything is shown.
func (s *Session) Connect() error {
	display, err := wlclient.DisplayConnect(nil)
	if err != nil {
		return fmt.Errorf("failed to connect to Wayland display: %w", err)
	}
	s.display = display

	registry, err := display.GetRegistry()
	if err != nil {
		return fmt.Errorf("failed to get registry: %w", err)
	}
	s.registry = registry

	registry.AddGlobalHandler(s)
	registry.AddGlobalRemoveHandler(s)

	if err := wlclient.DisplayRoundtrip(display); err != nil {
		return fmt.Errorf("failed to process registry events: %w", err)
	}
	if err := wlclient.DisplayRoundtrip(display); err != nil {
		return fmt.Errorf("failed to process seat capabilities: %w", err)
	}

	if s.compositor == nil {
		return fmt.Errorf("wl_compositor not available")
	}
	if s.shm == nil {
		return fmt.Errorf("wl_shm not available")
	}
	if s.layerShell == nil {
		return fmt.Errorf("zwlr_layer_shell_v1 not available (a wlroots-based compositor or KDE Plasma 6+ is required)")
	}

	if s.config.TimeoutMS > 0 {
		if err := s.startIdleWatch(); err != nil {
			return err
		}
	}

	return nil
}

// HandleRegistryGlobal binds the globals we care about as the compositor
// announces them.
func (s *Session) HandleRegistryGlobal(ev wl.RegistryGlobalEvent) {
	switch ev.Interface {
	case "wl_compositor":
		s.compositor = wlclient.RegistryBindCompositorInterface(s.registry, ev.Name, 4)
		Debug("Bound wl_compositor")
	case "wl_shm":
		s.shm = wlclient.RegistryBindShmInterface(s.registry, ev.Name, 1)
		Debug("Bound wl_shm")
	case "wl_seat":
		s.seat = wlclient.RegistryBindSeatInterface(s.registry, ev.Name, 5)
		s.seat.AddCapabilitiesHandler(s)
		Debug("Bound wl_seat")
	case "zwlr_layer_shell_v1":
		version := ev.Version
		if version > 4 {
			version = 4
		}
		s.layerShell = wlrlayershell.BindLayerShell(s.registry, ev.Name, version)
		Debug("Bound zwlr_layer_shell_v1")
	case "ext_idle_notifier_v1":
		s.idleNotifier = extidlenotify.BindIdleNotifier(s.registry, ev.Name, 1)
		Debug("Bound ext_idle_notifier_v1")
	}
}

// HandleRegistryGlobalRemove ignores globals removed at runtime; dynamic
// reconfiguration is out of scope for a one-shot overlay.
func (s *Session) HandleRegistryGlobalRemove(ev wl.RegistryGlobalRemoveEvent) {
}

// Run pumps compositor events until the running flag is cleared or the
// connection fails. Every listener callback executes inside DisplayDispatch,
// which blocks until at least one event was processed.
func (s *Session) Run() {
	if s.config.TimeoutMS == 0 {
		// No timeout: the overlay goes up right away.
		s.overlay.Show()
	}

	for s.running {
		if err := wlclient.DisplayDispatch(s.display); err != nil {
			Error("Failed to dispatch Wayland events: %v", err)
			break
		}
	}
}

// createOverlaySurface creates the wl_surface / layer surface pair and issues
// the initial empty commit that asks the compositor for a size.
func (s *Session) createOverlaySurface(o *Overlay) error {
	surface, err := s.compositor.CreateSurface()
	if err != nil {
		return fmt.Errorf("failed to create surface: %w", err)
	}

	layerSurface, err := s.layerShell.GetLayerSurface(surface, nil, wlrlayershell.LayerOverlay, overlayNamespace)
	if err != nil {
		surface.Destroy()
		return fmt.Errorf("failed to get layer surface: %w", err)
	}

	wlrlayershell.LayerSurfaceAddListener(layerSurface, o)

	// Anchored to all four edges with a requested size of 0x0 the surface
	// spans the whole output; the exact size arrives with the configure.
	layerSurface.SetAnchor(wlrlayershell.AnchorTop | wlrlayershell.AnchorBottom |
		wlrlayershell.AnchorLeft | wlrlayershell.AnchorRight)
	layerSurface.SetSize(0, 0)
	// Exclusive zone -1: extend over panels and other layer surfaces too.
	layerSurface.SetExclusiveZone(-1)
	// All keyboard input goes to the overlay while it is up.
	layerSurface.SetKeyboardInteractivity(wlrlayershell.KeyboardInteractivityExclusive)

	surface.Commit()

	s.surface = surface
	s.layerSurface = layerSurface
	return nil
}

func (s *Session) ackConfigure(serial uint32) error {
	if s.layerSurface == nil {
		return nil
	}
	return s.layerSurface.AckConfigure(serial)
}

// attachBlackBuffer replaces whatever buffer is attached with a freshly
// allocated black one at the given size and commits the surface.
func (s *Session) attachBlackBuffer(width, height uint32) error {
	if s.buf != nil {
		s.buf.Destroy()
		s.buf = nil
	}

	buf, err := createShmBuffer(s.shm, width, height)
	if err != nil {
		return err
	}
	s.buf = buf

	s.surface.Attach(buf.buffer, 0, 0)
	s.surface.Damage(0, 0, int32(width), int32(height))
	s.surface.Commit()
	return nil
}

// destroyOverlaySurface tears down the layer surface, then the surface, then
// the pixel buffer, in that order. Tolerates partially created state; the
// requests reach the compositor socket as they are sent, so nothing is left
// pending.
func (s *Session) destroyOverlaySurface() {
	if s.layerSurface != nil {
		s.layerSurface.Destroy()
		s.layerSurface = nil
	}
	if s.surface != nil {
		s.surface.Destroy()
		s.surface = nil
	}
	if s.buf != nil {
		s.buf.Destroy()
		s.buf = nil
	}
}

// Close tears everything down in reverse creation order, children before
// parents. Every destroy is guarded by a presence check so a partially
// initialized session still cleans up what it has.
func (s *Session) Close() {
	// Take the overlay down first, without letting the zero-timeout policy
	// put it straight back up.
	if s.overlay != nil {
		s.overlay.exitOnHide = true
		s.overlay.Hide()
	}

	if s.idleWatch != nil {
		s.idleWatch.Destroy()
		s.idleWatch = nil
	}
	if s.idleNotifier != nil {
		s.idleNotifier.Destroy()
		s.idleNotifier = nil
	}
	if s.keyboard != nil {
		s.keyboard.Release()
		s.keyboard = nil
	}
	if s.pointer != nil {
		s.pointer.Release()
		s.pointer = nil
	}
	if s.seat != nil {
		s.seat.Release()
		s.seat = nil
	}
	if s.layerShell != nil {
		s.layerShell.Destroy()
		s.layerShell = nil
	}
	// wl_shm, wl_compositor and wl_registry carry no destructor request in
	// the bound interface versions; their proxies die with the connection.
	if s.display != nil {
		wlclient.DisplayDisconnect(s.display)
		s.display = nil
	}
}
