package brightness

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultBacklightDirs are the device class directories searched for a
// brightness node, in priority order.
var DefaultBacklightDirs = []string{"/sys/class/backlight", "/sys/class/leds"}

// findSysfs returns the first device under dirs with a usable brightness
// file. When readOnly is true a readable file is enough; writes are then
// expected to go through logind.
func findSysfs(dirs []string, readOnly bool, log *slog.Logger) (Sysfs, error) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Debug("skip device class", slog.String("dir", dir), slog.Any("error", err))
			}
			continue
		}
		for _, e := range entries {
			dev := filepath.Join(dir, e.Name())
			path := filepath.Join(dev, "brightness")
			if !isRegular(path) {
				continue
			}
			mode := uint32(unix.W_OK)
			if readOnly {
				mode = unix.R_OK
			}
			if err := unix.Access(path, mode); err != nil {
				log.Debug("skip device", slog.String("path", path), slog.Any("error", err))
				continue
			}
			b := Sysfs{
				DevicePath: path,
				Subsystem:  filepath.Base(dir),
				Name:       e.Name(),
			}
			if maxPath := filepath.Join(dev, "max_brightness"); isRegular(maxPath) {
				b.MaxPath = maxPath
			}
			return b, nil
		}
	}
	return Sysfs{}, ErrNoDevice
}

func isRegular(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(data))
	return strconv.Atoi(s)
}

// scale returns the raw value corresponding to full brightness.
func (b Sysfs) scale() (int, error) {
	if b.MaxPath == "" {
		return 100, nil
	}
	maxVal, err := readInt(b.MaxPath)
	if err != nil {
		return 0, err
	}
	if maxVal <= 0 {
		return 0, fmt.Errorf("invalid max_brightness value: %d", maxVal)
	}
	return maxVal, nil
}

func (b Sysfs) read() (float64, error) {
	cur, err := readInt(b.DevicePath)
	if err != nil {
		return 0, err
	}
	maxVal, err := b.scale()
	if err != nil {
		return 0, err
	}
	return float64(cur) / float64(maxVal), nil
}

// target returns the raw level for the normalized level v.
func (b Sysfs) target(v float64) (int, error) {
	maxVal, err := b.scale()
	if err != nil {
		return 0, err
	}
	return int(math.Round(v * float64(maxVal))), nil
}

// write replaces the contents of the brightness file with raw.
func (b Sysfs) write(raw int) error {
	f, err := os.OpenFile(b.DevicePath, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	_, err = f.WriteString(strconv.Itoa(raw))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
