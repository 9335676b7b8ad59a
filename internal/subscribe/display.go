package subscribe

import (
	"errors"
	"log"
	"strings"

	"golang.org/x/sys/unix"
)

// DisplayEvents sends on the returned channel when the kernel reports a
// change to a backlight device. The channel is closed when stop is closed
// or the uevent socket cannot be opened.
func DisplayEvents(stop <-chan struct{}) <-chan struct{} {
	events := make(chan struct{}, 1)

	go func() {
		defer close(events)

		fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_KOBJECT_UEVENT)
		if err != nil {
			log.Printf("subscribe: failed to open netlink socket: %v", err)
			return
		}
		defer unix.Close(fd)

		addr := &unix.SockaddrNetlink{
			Family: unix.AF_NETLINK,
			Groups: 1, // listen to broadcast uevents
		}
		if err := unix.Bind(fd, addr); err != nil {
			log.Printf("subscribe: failed to bind netlink socket: %v", err)
			return
		}
		// Wake periodically to notice stop.
		tv := unix.Timeval{Sec: 1}
		if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
			log.Printf("subscribe: failed to set netlink timeout: %v", err)
			return
		}

		buf := make([]byte, 4096)
		for {
			select {
			case <-stop:
				return
			default:
			}

			n, _, err := unix.Recvfrom(fd, buf, 0)
			if err != nil {
				if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
					continue
				}
				log.Printf("subscribe: netlink recv error: %v", err)
				continue
			}

			if isBacklightChange(buf[:n]) {
				select {
				case events <- struct{}{}:
				default:
				}
			}
		}
	}()

	return events
}

// isBacklightChange reports whether msg is a uevent for a change to a
// backlight class device. Fields of a uevent are NUL separated.
func isBacklightChange(msg []byte) bool {
	var subsystem, change bool
	for _, f := range strings.Split(string(msg), "\x00") {
		switch f {
		case "SUBSYSTEM=backlight":
			subsystem = true
		case "ACTION=change":
			change = true
		}
	}
	return subsystem && change
}
