package styles

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeWatcher_Reloads(t *testing.T) {
	path := writeTheme(t, validTheme)

	changes := make(chan *ColorPalette, 4)
	w, err := NewThemeWatcher(path, func(p *ColorPalette) { changes <- p }, nil)
	if err != nil {
		t.Fatalf("NewThemeWatcher() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	updated := strings.Replace(validTheme, `"#FF0000"`, `"#123456"`, 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changes:
		if p.Primary != lipgloss.Color("#123456") {
			t.Errorf("Primary = %v, want #123456", p.Primary)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for theme reload")
	}
}

func TestThemeWatcher_ReportsInvalidTheme(t *testing.T) {
	path := writeTheme(t, validTheme)

	errs := make(chan error, 4)
	w, err := NewThemeWatcher(path, func(*ColorPalette) {}, func(err error) { errs <- err })
	if err != nil {
		t.Fatalf("NewThemeWatcher() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(path, []byte("name: broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errs:
		if !strings.Contains(err.Error(), "invalid theme") {
			t.Errorf("error = %v, want invalid theme", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

func TestThemeWatcher_StopTwice(t *testing.T) {
	w, err := NewThemeWatcher(writeTheme(t, validTheme), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	w.Stop()
	w.Stop()
}
