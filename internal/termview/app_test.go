package termview

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/sim"
)

func newTestApp(t *testing.T, cols, rows int) (*App, *sim.Loop, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	s := config.Default()
	s.Count = 12
	loop := sim.New(s, rand.New(rand.NewSource(1)))
	return NewApp(screen, loop), loop, screen
}

func TestNewApp_SizesViewport(t *testing.T) {
	_, loop, _ := newTestApp(t, 80, 25)
	f := loop.Snapshot()
	if f.Width != 80*CellW || f.Height != 24*CellH {
		t.Errorf("Expected viewport %dx%d, got %dx%d", 80*CellW, 24*CellH, f.Width, f.Height)
	}
	if len(f.Particles) != 12 {
		t.Errorf("Expected 12 particles, got %d", len(f.Particles))
	}
}

func TestHandleInput_Keys(t *testing.T) {
	app, loop, _ := newTestApp(t, 80, 25)

	tests := []struct {
		name  string
		ev    *tcell.EventKey
		check func() bool
	}{
		{"Toggle outline", tcell.NewEventKey(tcell.KeyRune, 'o', tcell.ModNone),
			func() bool { return !loop.Settings().ShowOutline }},
		{"More particles", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
			func() bool { return loop.Settings().Count == 13 }},
		{"Page fewer", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone),
			func() bool { return loop.Settings().Count == 1 }},
		{"Stronger", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone),
			func() bool { return loop.Settings().RepulseForce > config.DefaultRepulse }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !app.handleInput(tt.ev) {
				t.Fatal("Expected key not to quit")
			}
			if !tt.check() {
				t.Errorf("Expected settings change, got %+v", loop.Settings())
			}
		})
	}
}

func TestHandleInput_Quit(t *testing.T) {
	app, _, _ := newTestApp(t, 40, 10)
	if app.handleInput(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("Expected q to quit")
	}
	if app.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Expected Esc to quit")
	}
}

func TestHandleInput_Pointer(t *testing.T) {
	app, loop, _ := newTestApp(t, 40, 10)

	app.handleInput(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	f := loop.Snapshot()
	x, y := PixelAt(3, 2)
	if !f.Pointer.Active || f.Pointer.Pos.X != x || f.Pointer.Pos.Y != y {
		t.Errorf("Expected pointer at (%v,%v), got %+v", x, y, f.Pointer)
	}

	app.handleInput(tcell.NewEventFocus(false))
	if loop.Snapshot().Pointer.Active {
		t.Error("Expected pointer cleared on focus loss")
	}

	app.handleInput(tcell.NewEventMouse(3, 9, tcell.ButtonNone, tcell.ModNone))
	if loop.Snapshot().Pointer.Active {
		t.Error("Expected status row not to count as canvas")
	}
}

func TestHandleInput_Resize(t *testing.T) {
	app, loop, screen := newTestApp(t, 40, 10)
	screen.SetSize(60, 21)
	app.handleInput(tcell.NewEventResize(60, 21))

	f := loop.Snapshot()
	if f.Width != 60*CellW || f.Height != 20*CellH {
		t.Errorf("Expected viewport %dx%d, got %dx%d", 60*CellW, 20*CellH, f.Width, f.Height)
	}
	if len(f.Particles) != 12 {
		t.Errorf("Expected resize to keep 12 particles, got %d", len(f.Particles))
	}
}

func TestDraw(t *testing.T) {
	app, loop, screen := newTestApp(t, 80, 25)
	app.draw(loop.Step())

	var particles, outline int
	for row := 0; row < 24; row++ {
		for col := 0; col < 80; col++ {
			r, _, _, _ := screen.GetContent(col, row)
			switch r {
			case GlyphSmall, GlyphLarge:
				particles++
			case GlyphOutline:
				outline++
			}
		}
	}
	if particles == 0 {
		t.Error("Expected particles drawn")
	}
	if outline == 0 {
		t.Error("Expected outline drawn")
	}

	r, _, _, _ := screen.GetContent(1, 24)
	if r != 'p' {
		t.Errorf("Expected status line on last row, got %q", r)
	}
}

func newPollScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	return screen
}

// post retries while the screen's own event queue is full.
func post(t *testing.T, screen tcell.Screen, ev tcell.Event) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for screen.PostEvent(ev) != nil {
		if time.Now().After(deadline) {
			t.Fatal("Timed out posting event")
		}
		time.Sleep(time.Millisecond)
	}
}

// drain reads until the channel closes and returns how many events it saw.
func drain(t *testing.T, events <-chan tcell.Event) int {
	t.Helper()
	n := 0
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return n
			}
			n++
		case <-timeout:
			t.Fatalf("Expected event channel closed, still open after %d events", n)
			return n
		}
	}
}

func TestPollEvents_StopsWhenDoneWithFullBuffer(t *testing.T) {
	screen := newPollScreen(t)
	defer screen.Fini()

	done := make(chan struct{})
	events := pollEvents(screen, done)

	// Fill the buffer and leave one more event waiting on a reader that never comes.
	for i := 0; i < cap(events)+1; i++ {
		post(t, screen, tcell.NewEventInterrupt(i))
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(events) < cap(events) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if len(events) != cap(events) {
		t.Fatalf("Expected %d buffered events, got %d", cap(events), len(events))
	}
	time.Sleep(10 * time.Millisecond)

	close(done)

	if n := drain(t, events); n != cap(events) {
		t.Errorf("Expected %d events before close, got %d", cap(events), n)
	}
}

func TestPollEvents_ClosesOnFini(t *testing.T) {
	screen := newPollScreen(t)
	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done)

	post(t, screen, tcell.NewEventInterrupt(nil))
	screen.Fini()

	if n := drain(t, events); n > 1 {
		t.Errorf("Expected at most the one posted event, got %d", n)
	}
}
