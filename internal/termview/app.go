package termview

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/sim"
)

// App runs the ring in a terminal. The bottom row is kept for the status line.
type App struct {
	screen tcell.Screen
	loop   *sim.Loop

	cols, rows int
	outline    color.RGBA

	// OnFrame, when set, sees every stepped frame (audio level, stats).
	OnFrame func(sim.Frame)
}

func NewApp(screen tcell.Screen, loop *sim.Loop) *App {
	a := &App{
		screen:  screen,
		loop:    loop,
		outline: loop.Settings().BaseColor(),
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	a.handleResize()
	return a
}

func (a *App) handleResize() {
	a.cols, a.rows = a.screen.Size()
	w, h := Viewport(a.cols, a.rows-1)
	a.loop.Resize(w, h)
}

// handleInput applies one event. It returns false when the user asked to quit.
func (a *App) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			a.loop.NudgeCount(config.CountStep)
		case tcell.KeyDown:
			a.loop.NudgeCount(-config.CountStep)
		case tcell.KeyPgUp:
			a.loop.NudgeCount(config.CountPageStep)
		case tcell.KeyPgDn:
			a.loop.NudgeCount(-config.CountPageStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'o', 'O':
				a.loop.ToggleOutline()
			case '+', '=':
				a.loop.NudgeRepulseForce(config.RepulseStep)
			case '-', '_':
				a.loop.NudgeRepulseForce(-config.RepulseStep)
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		if row >= a.rows-1 {
			a.loop.ClearPointer()
			break
		}
		a.loop.SetPointer(PixelAt(col, row))

	case *tcell.EventFocus:
		if !ev.Focused {
			a.loop.ClearPointer()
		}

	case *tcell.EventResize:
		a.handleResize()
		a.screen.Sync()
	}
	return true
}

func (a *App) draw(f sim.Frame) {
	a.screen.Clear()
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)

	g := Rasterize(f, a.cols, a.rows-1, a.outline)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			c := g.At(col, row)
			if c.Rune == 0 {
				continue
			}
			style := bg.Foreground(tcell.NewRGBColor(int32(c.Color.R), int32(c.Color.G), int32(c.Color.B)))
			a.screen.SetContent(col, row, c.Rune, nil, style)
		}
	}

	a.drawStatus(f)
	a.screen.Show()
}

func (a *App) drawStatus(f sim.Frame) {
	status := fmt.Sprintf(" particles %d | repulse %.1f | outline %v | ↑↓ count  +/- force  o outline  q quit",
		len(f.Particles), f.Settings.RepulseForce, f.Settings.ShowOutline)
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	col := 0
	for _, r := range status {
		if col >= a.cols {
			break
		}
		a.screen.SetContent(col, a.rows-1, r, nil, style)
		col++
	}
}

// Run blocks until the user quits.
func (a *App) Run() {
	ticker := time.NewTicker(time.Second / config.TicksPerSecond)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	eventChan := pollEvents(a.screen, done)

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !a.handleInput(ev) {
				log.Printf("terminal loop stopped")
				return
			}

		case <-ticker.C:
			f := a.loop.Step()
			if a.OnFrame != nil {
				a.OnFrame(f)
			}
			a.draw(f)
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done is closed.
// The returned channel is closed when the poller exits.
func pollEvents(screen tcell.Screen, done <-chan struct{}) <-chan tcell.Event {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		defer close(eventChan)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()
	return eventChan
}
