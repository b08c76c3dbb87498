package internal

import (
	"github.com/neurlang/wayland/wl"
)

var _ wl.SeatCapabilitiesHandler = (*Session)(nil)
var _ wl.KeyboardKeyHandler = (*Session)(nil)
var _ wl.PointerEnterHandler = (*Session)(nil)
var _ wl.PointerMotionHandler = (*Session)(nil)
var _ wl.PointerButtonHandler = (*Session)(nil)
var _ wl.PointerAxisHandler = (*Session)(nil)

// HandleSeatCapabilities subscribes to the keyboard and pointer streams as
// the seat announces them. A capability may be announced more than once over
// the lifetime of a seat; each device is bound at most once.
func (s *Session) HandleSeatCapabilities(ev wl.SeatCapabilitiesEvent) {
	if ev.Capabilities&wl.SeatCapabilityKeyboard != 0 && s.keyboard == nil {
		keyboard, err := s.seat.GetKeyboard()
		if err != nil {
			Error("Failed to get keyboard: %v", err)
		} else {
			s.keyboard = keyboard
			keyboard.AddKeyHandler(s)
			Debug("Keyboard listener bound")
		}
	}

	if ev.Capabilities&wl.SeatCapabilityPointer != 0 && s.pointer == nil {
		pointer, err := s.seat.GetPointer()
		if err != nil {
			Error("Failed to get pointer: %v", err)
		} else {
			s.pointer = pointer
			pointer.AddEnterHandler(s)
			pointer.AddMotionHandler(s)
			pointer.AddButtonHandler(s)
			pointer.AddAxisHandler(s)
			Debug("Pointer listener bound")
		}
	}
}

// HandleKeyboardKey dismisses the overlay on every key press. Releases are
// ignored so the release of the key that dismissed it does not retrigger.
func (s *Session) HandleKeyboardKey(ev wl.KeyboardKeyEvent) {
	if ev.State != wl.KeyboardKeyStatePressed {
		return
	}
	Debug("Key press, hiding overlay")
	s.overlay.Hide()
}

// HandlePointerEnter hides the cursor while it is over the overlay: a nil
// cursor surface means no cursor at all.
func (s *Session) HandlePointerEnter(ev wl.PointerEnterEvent) {
	s.pointer.SetCursor(ev.Serial, nil, 0, 0)
}

// HandlePointerMotion dismisses on any motion, sub-pixel included; any sign
// of life ends the blackout.
func (s *Session) HandlePointerMotion(ev wl.PointerMotionEvent) {
	s.overlay.Hide()
}

// HandlePointerButton dismisses on button press.
func (s *Session) HandlePointerButton(ev wl.PointerButtonEvent) {
	if ev.State != wl.PointerButtonStatePressed {
		return
	}
	s.overlay.Hide()
}

// HandlePointerAxis dismisses on scroll.
func (s *Session) HandlePointerAxis(ev wl.PointerAxisEvent) {
	s.overlay.Hide()
}
