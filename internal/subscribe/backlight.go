package subscribe

import (
	"bytes"
	"os"
	"time"
)

// BacklightPoll sends on the returned channel whenever the contents of
// path change, checking every interval. Writes made through the sysfs
// node do not always produce a uevent. The channel is closed when stop
// is closed.
func BacklightPoll(path string, interval time.Duration, stop <-chan struct{}) <-chan struct{} {
	events := make(chan struct{}, 1)

	go func() {
		defer close(events)

		prev, _ := os.ReadFile(path)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}

			cur, err := os.ReadFile(path)
			if err != nil || bytes.Equal(cur, prev) {
				continue
			}
			prev = cur

			select {
			case events <- struct{}{}:
			default:
			}
		}
	}()

	return events
}
