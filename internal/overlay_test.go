package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdsch/blkout/wlrlayershell"
)

// fakeBackend stands in for the Wayland session in overlay tests.
type fakeBackend struct {
	created   int
	destroyed int
	acks      []uint32
	attaches  [][2]uint32

	createErr error
	attachErr error

	// runs inside destroyOverlaySurface, the way a compositor callback can
	// fire while the surface is being torn down
	onDestroy func()
}

func (f *fakeBackend) createOverlaySurface(o *Overlay) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created++
	return nil
}

func (f *fakeBackend) ackConfigure(serial uint32) error {
	f.acks = append(f.acks, serial)
	return nil
}

func (f *fakeBackend) attachBlackBuffer(width, height uint32) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attaches = append(f.attaches, [2]uint32{width, height})
	return nil
}

func (f *fakeBackend) destroyOverlaySurface() {
	f.destroyed++
	if f.onDestroy != nil {
		f.onDestroy()
	}
}

func configureEvent(serial, width, height uint32) wlrlayershell.LayerSurfaceConfigureEvent {
	return wlrlayershell.LayerSurfaceConfigureEvent{Serial: serial, Width: width, Height: height}
}

func newTestOverlay(backend *fakeBackend, config Config) (*Overlay, *bool) {
	stopped := false
	return NewOverlay(backend, config, func() { stopped = true }), &stopped
}

func TestShowIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.Show()
	overlay.Show()

	assert.Equal(t, 1, backend.created)
	assert.True(t, overlay.Visible())
}

func TestHideBeforeConfigureAttachesNothing(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.Hide()

	assert.Equal(t, 1, backend.destroyed)
	assert.Empty(t, backend.acks)
	assert.Empty(t, backend.attaches)
	assert.False(t, overlay.Visible())
}

func TestConfigureAcksAndAttaches(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(7, 1920, 1080))

	require.Equal(t, []uint32{7}, backend.acks)
	require.Equal(t, [][2]uint32{{1920, 1080}}, backend.attaches)
	assert.True(t, overlay.Visible())
}

func TestResizeReplacesBuffer(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(1, 1920, 1080))
	overlay.HandleLayerSurfaceConfigure(configureEvent(2, 2560, 1440))

	assert.Equal(t, []uint32{1, 2}, backend.acks)
	assert.Equal(t, [][2]uint32{{1920, 1080}, {2560, 1440}}, backend.attaches)
}

func TestConfigureAfterHideIsDropped(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.Hide()
	overlay.HandleLayerSurfaceConfigure(configureEvent(9, 800, 600))

	assert.Empty(t, backend.acks)
	assert.Empty(t, backend.attaches)
}

func TestEventBurstDismissesOnce(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(1, 1920, 1080))

	// a burst of key presses and pointer motion all funnels into Hide
	overlay.Hide()
	overlay.Hide()
	overlay.Hide()

	assert.Equal(t, 1, backend.destroyed)
}

func TestZeroTimeoutReshowsAfterHide(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 0})

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(1, 1920, 1080))
	overlay.Hide()

	assert.Equal(t, 1, backend.destroyed)
	assert.Equal(t, 2, backend.created)
	assert.True(t, overlay.Visible())
}

func TestTimeoutModeStaysHiddenAfterHide(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(1, 1920, 1080))
	overlay.Hide()

	assert.Equal(t, 1, backend.created)
	assert.False(t, overlay.Visible())
}

func TestExitOnHideSignalsShutdown(t *testing.T) {
	backend := &fakeBackend{}
	overlay, stopped := newTestOverlay(backend, Config{TimeoutMS: 0, ExitOnHide: true})

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(1, 1920, 1080))
	overlay.Hide()

	assert.True(t, *stopped)
	// exit-on-hide wins over the zero-timeout reopen policy
	assert.Equal(t, 1, backend.created)
	assert.False(t, overlay.Visible())
}

func TestCompositorClosedEventHides(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(1, 1920, 1080))
	overlay.HandleLayerSurfaceClosed(wlrlayershell.LayerSurfaceClosedEvent{})

	assert.Equal(t, 1, backend.destroyed)
	assert.False(t, overlay.Visible())
}

func TestReentrantHideDuringTeardownIsNoOp(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	// the compositor delivers closed while we are mid-destroy; the nested
	// Hide must observe the overlay as already hidden
	backend.onDestroy = func() {
		overlay.HandleLayerSurfaceClosed(wlrlayershell.LayerSurfaceClosedEvent{})
	}

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(1, 1920, 1080))
	overlay.Hide()

	assert.Equal(t, 1, backend.destroyed)
	assert.False(t, overlay.Visible())
}

func TestBufferAllocationFailureStopsRun(t *testing.T) {
	backend := &fakeBackend{attachErr: errors.New("out of shm")}
	overlay, stopped := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(1, 1920, 1080))

	assert.True(t, *stopped)
}

func TestSurfaceCreationFailureStopsRun(t *testing.T) {
	backend := &fakeBackend{createErr: errors.New("no surface")}
	overlay, stopped := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()

	assert.True(t, *stopped)
	assert.False(t, overlay.Visible())
}

func TestShowAfterHideUsesFreshResources(t *testing.T) {
	backend := &fakeBackend{}
	overlay, _ := newTestOverlay(backend, Config{TimeoutMS: 5000})

	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(1, 1920, 1080))
	overlay.Hide()
	overlay.Show()
	overlay.HandleLayerSurfaceConfigure(configureEvent(2, 1920, 1080))

	assert.Equal(t, 2, backend.created)
	assert.Equal(t, 1, backend.destroyed)
	assert.Equal(t, 2, len(backend.attaches))
}
