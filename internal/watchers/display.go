package watchers

import (
	"context"
	"time"

	"github.com/hoppxi/lumen/internal/subscribe"
	"github.com/hoppxi/lumen/pkg/brightness"
	"github.com/hoppxi/lumen/pkg/displayinfo"
	"github.com/hoppxi/lumen/pkg/hover"
)

// PollInterval is how often a sysfs device is checked for changes made
// outside the daemon.
const PollInterval = time.Second

// DisplayWatcher returns a watcher that re-reads the brightness level each
// time a backlight device reports a change, and publishes it.
func DisplayWatcher(c *brightness.Controller, m *hover.Machine, p *Publisher) func(stop <-chan struct{}) {
	return func(stop <-chan struct{}) {
		p.Level(displayinfo.GetDisplayInfo(c, m))

		uevents := subscribe.DisplayEvents(stop)
		var polled <-chan struct{}
		if b, ok := c.Backend().(brightness.Sysfs); ok {
			polled = subscribe.BacklightPoll(b.DevicePath, PollInterval, stop)
		}

		for uevents != nil || polled != nil {
			select {
			case <-stop:
				return
			case _, ok := <-uevents:
				if !ok {
					uevents = nil
					continue
				}
			case _, ok := <-polled:
				if !ok {
					polled = nil
					continue
				}
			}
			if _, err := c.Refresh(context.Background()); err != nil {
				continue
			}
			p.Level(displayinfo.GetDisplayInfo(c, m))
		}
		<-stop
	}
}
