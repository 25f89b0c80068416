package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

// tickMsg is one redraw opportunity.
type tickMsg time.Time

// timerMsg carries an expired core timer callback into Update.
type timerMsg func()

// blinkMsg toggles fault lamps.
type blinkMsg struct{}

// ThemeMsg swaps the palette, typically after the config file changed.
type ThemeMsg struct {
	Palette *styles.ColorPalette
}

const blinkInterval = 500 * time.Millisecond

// tick returns a command that sends a tickMsg after d.
func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func blink() tea.Cmd {
	return tea.Tick(blinkInterval, func(time.Time) tea.Msg {
		return blinkMsg{}
	})
}

// waitTimer blocks until the loop delivers the next expired callback.
func waitTimer(loop *clock.Loop) tea.Cmd {
	if loop == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case f := <-loop.Callbacks():
			return timerMsg(f)
		case <-loop.Done():
			return nil
		}
	}
}
