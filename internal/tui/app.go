// Package tui is the terminal presentation of the bridge.
//
// The bubbletea Update goroutine is the single event loop of the core: core
// timers are scheduled on a [clock.Loop] whose expired callbacks arrive in
// Update as messages, so no timer callback runs concurrently with a key press.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bridge/internal/bridge"
	"github.com/Iron-Ham/bridge/internal/clock"
	"github.com/Iron-Ham/bridge/internal/tui/styles"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	loop    *clock.Loop
}

// New creates a new TUI application. b must schedule its timers on loop.
func New(b *bridge.Bridge, loop *clock.Loop, palette *styles.ColorPalette) *App {
	return &App{
		model: NewModel(b, loop, palette),
		loop:  loop,
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Quit cleanly on termination so the terminal is restored.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()

	signal.Stop(sigChan)
	close(sigChan)
	a.loop.Close()
	return err
}

// Send delivers msg to the running program. It is a no-op before Run.
func (a *App) Send(msg tea.Msg) {
	if a.program != nil {
		a.program.Send(msg)
	}
}

// SetTheme swaps the palette of the running program.
func (a *App) SetTheme(p *styles.ColorPalette) {
	a.Send(ThemeMsg{Palette: p})
}
