package subscribe

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBacklightPoll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brightness")
	err := os.WriteFile(path, []byte("100\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	stop := make(chan struct{})
	events := BacklightPoll(path, 5*time.Millisecond, stop)

	err = os.WriteFile(path, []byte("250\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("no event after change")
	}

	close(stop)
	for range events {
	}
}
