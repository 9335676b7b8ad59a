package brightness

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Setter applies a raw device level through a privileged service.
type Setter interface {
	SetBrightness(subsystem, name string, value uint32) error
}

// Logind sets backlight levels with the login1 session SetBrightness
// method, which does not need write access to sysfs.
type Logind struct {
	conn    *dbus.Conn
	session dbus.ObjectPath
}

// DialLogind connects to logind on the system bus for the caller's
// session.
func DialLogind() (*Logind, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	return &Logind{conn: conn, session: "/org/freedesktop/login1/session/auto"}, nil
}

func (l *Logind) SetBrightness(subsystem, name string, value uint32) error {
	obj := l.conn.Object("org.freedesktop.login1", l.session)
	return obj.Call("org.freedesktop.login1.Session.SetBrightness", 0, subsystem, name, value).Err
}

func (l *Logind) Close() error {
	return l.conn.Close()
}
