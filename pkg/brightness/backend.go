// Package brightness detects and drives the mechanism used to change display
// brightness: a backlight sysfs node, the xbacklight tool or xrandr gain.
package brightness

import "fmt"

// Kind names a backend family.
type Kind string

const (
	KindSysfs      Kind = "sysfs"
	KindXbacklight Kind = "xbacklight"
	KindXrandr     Kind = "xrandr"
)

// Backend is one of Sysfs, ExternalTool or DisplayServerUtility.
type Backend interface {
	Kind() Kind
	fmt.Stringer

	isBackend()
}

// Sysfs drives a kernel backlight or led class device.
type Sysfs struct {
	// DevicePath is the path to the device's brightness file.
	DevicePath string
	// MaxPath is the path to max_brightness, empty when the device has
	// none. Without it raw values are taken as percentages.
	MaxPath string

	// Subsystem and Name identify the device to logind,
	// for example "backlight" and "intel_backlight".
	Subsystem string
	Name      string
}

func (Sysfs) Kind() Kind { return KindSysfs }
func (b Sysfs) String() string {
	return fmt.Sprintf("sysfs(%s)", b.DevicePath)
}
func (Sysfs) isBackend() {}

// ExternalTool drives an xbacklight compatible binary taking -get and
// -set <percent>.
type ExternalTool struct {
	Binary string
}

func (ExternalTool) Kind() Kind { return KindXbacklight }
func (b ExternalTool) String() string {
	return fmt.Sprintf("xbacklight(%s)", b.Binary)
}
func (ExternalTool) isBackend() {}

// DisplayServerUtility drives xrandr software gain on a single output.
type DisplayServerUtility struct {
	Binary string
	Output string
}

func (DisplayServerUtility) Kind() Kind { return KindXrandr }
func (b DisplayServerUtility) String() string {
	return fmt.Sprintf("xrandr(%s)", b.Output)
}
func (DisplayServerUtility) isBackend() {}

// ParseKind returns the Kind named by s. The empty string and "auto"
// return an empty Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", "auto":
		return "", nil
	case KindSysfs, KindXbacklight, KindXrandr:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown backend: %q", s)
	}
}
