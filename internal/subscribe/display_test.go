package subscribe

import "testing"

var backlightChangeTests = []struct {
	name string
	msg  string
	want bool
}{
	{
		name: "change",
		msg:  "change@/devices/pci0000:00/0000:00:02.0/drm/card0/card0-eDP-1/intel_backlight\x00ACTION=change\x00DEVPATH=/devices/pci0000:00/0000:00:02.0/drm/card0/card0-eDP-1/intel_backlight\x00SUBSYSTEM=backlight\x00SEQNUM=4711\x00",
		want: true,
	},
	{
		name: "add",
		msg:  "add@/devices/virtual/backlight/acpi_video0\x00ACTION=add\x00SUBSYSTEM=backlight\x00",
		want: false,
	},
	{
		name: "other_subsystem",
		msg:  "change@/devices/platform/thinkpad_acpi/leds/tpacpi::kbd_backlight\x00ACTION=change\x00SUBSYSTEM=leds\x00",
		want: false,
	},
	{
		name: "substring",
		msg:  "change@/x\x00ACTION=change\x00SUBSYSTEM=backlight_extra\x00",
		want: false,
	},
}

func TestIsBacklightChange(t *testing.T) {
	for _, test := range backlightChangeTests {
		t.Run(test.name, func(t *testing.T) {
			got := isBacklightChange([]byte(test.msg))
			if got != test.want {
				t.Errorf("unexpected result: got:%t want:%t", got, test.want)
			}
		})
	}
}
