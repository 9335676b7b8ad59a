package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/hoppxi/lumen/internal/watchers"
	"github.com/hoppxi/lumen/pkg/brightness"
	"github.com/hoppxi/lumen/pkg/displayinfo"
	"github.com/hoppxi/lumen/pkg/hover"
)

// ErrRunning is returned by New when another daemon holds the lock.
var ErrRunning = errors.New("lumen daemon is already running")

// RuntimeDir returns the directory holding the daemon socket and lock.
func RuntimeDir() string {
	var baseDir string
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		baseDir = runtimeDir
	} else {
		baseDir = os.TempDir()
	}
	return filepath.Join(baseDir, "lumen")
}

func socketPath() string { return filepath.Join(RuntimeDir(), "socket.sock") }
func lockPath() string   { return filepath.Join(RuntimeDir(), "pid") }

// AppManager is the brightness daemon. It owns one controller and one
// hover machine for its lifetime.
type AppManager struct {
	id    uuid.UUID
	ctrl  *brightness.Controller
	hover *hover.Machine
	pub   *watchers.Publisher
	log   *slog.Logger

	visible atomic.Bool

	mu       sync.Mutex
	stops    []chan struct{}
	wg       sync.WaitGroup
	listener net.Listener
	lock     *flock.Flock
	stopped  bool
	done     chan struct{}
}

// New takes the daemon lock and constructs the controller from the
// configuration.
func New(ctx context.Context, cfg *ConfigManager, log *slog.Logger) (*AppManager, error) {
	s, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	opts, err := s.Options(log)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(RuntimeDir(), 0o700)
	if err != nil {
		return nil, err
	}
	fl := flock.New(lockPath())
	ok, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRunning
	}
	err = os.WriteFile(lockPath(), []byte(fmt.Sprintln(os.Getpid())), 0o600)
	if err != nil {
		fl.Unlock()
		return nil, err
	}

	m := newManager(brightness.New(ctx, opts), watchers.NewPublisher(s.Publish(), nil, log), s.HideDelay, log)
	m.lock = fl
	cfg.Watch(func(s Settings, err error) {
		if err != nil {
			m.log.Warn("ignoring config change", slog.Any("error", err))
			return
		}
		m.log.Info("config reloaded; backend changes apply on restart")
		m.hover.SetDelay(s.HideDelay)
		m.pub.Configure(s.Publish())
	})
	return m, nil
}

func newManager(ctrl *brightness.Controller, pub *watchers.Publisher, delay time.Duration, log *slog.Logger) *AppManager {
	m := &AppManager{
		id:   uuid.New(),
		ctrl: ctrl,
		pub:  pub,
		done: make(chan struct{}),
	}
	m.log = log.With(slog.String("component", "manager"), slog.String("id", m.id.String()))
	m.hover = hover.New(
		hover.WithDelay(delay),
		hover.OnShow(func() {
			ctrl.Refresh(context.Background())
			pub.Level(displayinfo.GetDisplayInfo(ctrl, m.hover))
		}),
		hover.OnChange(func(s hover.State) {
			// PendingHide is still on screen.
			visible := s != hover.Hidden
			if m.visible.Swap(visible) != visible {
				pub.Visible(visible)
			}
		}),
	)
	return m
}

// ID returns the instance identifier of this daemon run.
func (m *AppManager) ID() uuid.UUID {
	return m.id
}

// Done is closed when the daemon has stopped.
func (m *AppManager) Done() <-chan struct{} {
	return m.done
}

// Start starts the watchers and the IPC server.
func (m *AppManager) Start() error {
	path := socketPath()
	_ = os.Remove(path)

	listener, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("error listening on socket: %w", err)
	}
	m.mu.Lock()
	m.listener = listener
	m.mu.Unlock()
	m.log.Info("IPC server listening", slog.String("socket", path))

	m.StartWatcher(watchers.DisplayWatcher(m.ctrl, m.hover, m.pub))

	go m.serve(listener)
	return nil
}

func (m *AppManager) serve(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		go m.handleConnection(conn)
	}
}

func (m *AppManager) handleConnection(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return
	}

	request := strings.TrimSpace(string(buf[:n]))
	command, arg, _ := strings.Cut(request, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "STOP":
		m.log.Info("received STOP via IPC, shutting down")
		_, _ = conn.Write([]byte("OK: Shutting down."))

		// Close immediately so client doesn't hang
		_ = conn.Close()

		go m.Stop()

	case "STATUS":
		fmt.Fprintf(conn, "OK: running %s", m.id)

	case "GET":
		fmt.Fprintf(conn, "OK: %s", formatLevel(m.ctrl.Brightness()))

	case "INFO":
		info, err := displayinfo.GetDisplayInfoJSON(m.ctrl, m.hover)
		if err != nil {
			fmt.Fprintf(conn, "ERR: %v", err)
			return
		}
		fmt.Fprintf(conn, "OK: %s", info)

	case "SET":
		v, err := m.ctrl.Apply(context.Background(), arg)
		// The requested level is published even when the backend
		// failed, matching the controller's recorded level.
		m.pub.Level(displayinfo.GetDisplayInfo(m.ctrl, m.hover))
		if err != nil {
			fmt.Fprintf(conn, "ERR: %v", err)
			return
		}
		fmt.Fprintf(conn, "OK: %s", formatLevel(v))

	case "ENTER", "LEAVE":
		t, ok := hover.ParseTarget(arg)
		if !ok {
			fmt.Fprintf(conn, "ERR: unknown target %q", arg)
			return
		}
		var s hover.State
		if command == "ENTER" {
			s = m.hover.Enter(t)
		} else {
			s = m.hover.Leave(t)
		}
		fmt.Fprintf(conn, "OK: %s", s)

	case "STATE":
		fmt.Fprintf(conn, "OK: %s", m.hover.State())

	default:
		_, _ = conn.Write([]byte("ERR: unknown command"))
	}
}

// StartWatcher runs f until the daemon stops, restarting it if it returns
// or panics.
func (m *AppManager) StartWatcher(f func(stop <-chan struct{})) {
	stop := make(chan struct{})
	m.mu.Lock()
	m.stops = append(m.stops, stop)
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						m.log.Error("watcher panic", slog.Any("panic", r))
					}
				}()
				f(stop)
			}()

			select {
			case <-stop:
				return
			case <-time.After(2 * time.Second):
				m.log.Info("restarting watcher")
			}
		}
	}()
}

// Stop stops the watchers and the IPC server, cancels any pending hide
// and releases the controller and the daemon lock. It is safe to call
// more than once.
func (m *AppManager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	stops := m.stops
	listener := m.listener
	m.stops = nil
	m.mu.Unlock()

	for _, s := range stops {
		close(s)
	}
	if listener != nil {
		listener.Close()
		os.Remove(socketPath())
	}
	m.wg.Wait()

	m.hover.Close()
	if err := m.ctrl.Close(); err != nil {
		m.log.Warn("failed to close controller", slog.Any("error", err))
	}
	if m.lock != nil {
		m.lock.Unlock()
		os.Remove(lockPath())
	}
	close(m.done)
}

func formatLevel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ConnectIPC dials the daemon.
func ConnectIPC() (net.Conn, error) {
	return net.DialTimeout("unix", socketPath(), 500*time.Millisecond)
}

// SendIPCCommand sends cmd to the daemon and returns its raw response.
func SendIPCCommand(cmd string) (string, error) {
	conn, err := ConnectIPC()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(cmd)); err != nil {
		return "", err
	}

	buf := make([]byte, 4096)
	var resp []byte
	for {
		n, err := conn.Read(buf)
		resp = append(resp, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return string(resp), nil
}

// Request sends cmd and returns the payload of an OK response. An ERR
// response is returned as an error.
func Request(cmd string) (string, error) {
	resp, err := SendIPCCommand(cmd)
	if err != nil {
		return "", err
	}
	if msg, ok := strings.CutPrefix(resp, "OK:"); ok {
		return strings.TrimSpace(msg), nil
	}
	if msg, ok := strings.CutPrefix(resp, "ERR:"); ok {
		return "", errors.New(strings.TrimSpace(msg))
	}
	return "", fmt.Errorf("unexpected response: %q", resp)
}
