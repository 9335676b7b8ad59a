package displayinfo

import (
	"encoding/json"
	"math"

	"github.com/hoppxi/lumen/pkg/brightness"
	"github.com/hoppxi/lumen/pkg/hover"
)

type DisplayInfo struct {
	Level      int     `json:"level"`
	Brightness float64 `json:"brightness"`
	Backend    string  `json:"backend"`
	Device     string  `json:"device,omitempty"`
	Output     string  `json:"output,omitempty"`
	Visible    string  `json:"visible,omitempty"`
}

// GetDisplayInfo describes the controller's backend and last known level.
// A nil machine leaves Visible empty.
func GetDisplayInfo(c *brightness.Controller, m *hover.Machine) *DisplayInfo {
	level := c.Brightness()
	info := &DisplayInfo{
		Level:      int(math.Round(level * 100)),
		Brightness: level,
		Backend:    string(c.Backend().Kind()),
	}
	switch b := c.Backend().(type) {
	case brightness.Sysfs:
		info.Device = b.Name
	case brightness.DisplayServerUtility:
		info.Output = b.Output
	}
	if m != nil {
		info.Visible = m.State().String()
	}
	return info
}

func GetDisplayInfoJSON(c *brightness.Controller, m *hover.Machine) ([]byte, error) {
	return json.MarshalIndent(GetDisplayInfo(c, m), "", "  ")
}
