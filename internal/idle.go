package internal

import (
	"fmt"

	"github.com/hdsch/blkout/extidlenotify"
)

var _ extidlenotify.IdleNotificationIdledHandler = (*Session)(nil)
var _ extidlenotify.IdleNotificationResumedHandler = (*Session)(nil)

// startIdleWatch asks the idle notifier to watch the seat for the configured
// timeout. The compositor re-arms the notification after every idled/resumed
// cycle, so it is created exactly once and destroyed only at shutdown.
func (s *Session) startIdleWatch() error {
	if s.idleNotifier == nil {
		return fmt.Errorf("compositor does not support ext-idle-notify-v1")
	}
	if s.seat == nil {
		return fmt.Errorf("no seat found")
	}

	watch, err := s.idleNotifier.GetIdleNotification(uint32(s.config.TimeoutMS), s.seat)
	if err != nil {
		return fmt.Errorf("failed to get idle notification: %w", err)
	}
	s.idleWatch = watch
	extidlenotify.IdleNotificationAddListener(watch, s)

	Debug("Idle watch armed for %d ms", s.config.TimeoutMS)
	return nil
}

// HandleIdleNotificationIdled puts the overlay up once the inactivity
// threshold elapses.
func (s *Session) HandleIdleNotificationIdled(ev extidlenotify.IdleNotificationIdledEvent) {
	Debug("Seat idle, showing overlay")
	s.overlay.Show()
}

// HandleIdleNotificationResumed is the authoritative fallback dismissal:
// input events on the overlay surface normally hide it first, but activity
// the input listeners do not observe still resumes the seat.
func (s *Session) HandleIdleNotificationResumed(ev extidlenotify.IdleNotificationResumedEvent) {
	Debug("Seat resumed, hiding overlay")
	s.overlay.Hide()
}
