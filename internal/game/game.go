package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/prompt"
	"github.com/iburimskiy/particle-ring/internal/render"
	"github.com/iburimskiy/particle-ring/internal/sim"
)

var background = color.RGBA{0, 0, 0, 255}

type game struct {
	loop   *sim.Loop
	panel  *prompt.Panel
	style  render.Style
	frame  sim.Frame
	width  int
	height int

	// onFrame, when set, sees every stepped frame.
	onFrame func(sim.Frame)

	showHelp bool
}

var _ ebiten.Game = (*game)(nil)

// newGame wires the ebiten game to a simulation loop. onFrame may be nil.
func newGame(loop *sim.Loop, onFrame func(sim.Frame)) *game {
	return &game{
		loop:     loop,
		panel:    prompt.NewPanel(loop, prompt.Zenity),
		style:    render.StyleFor(loop.Settings()),
		onFrame:  onFrame,
		showHelp: true,
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.updatePointer()
	g.updateControls()

	g.frame = g.loop.Step()
	if g.onFrame != nil {
		g.onFrame(g.frame)
	}
	return nil
}

// updatePointer feeds the cursor to the loop while it is over the canvas.
func (g *game) updatePointer() {
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= g.width || my >= g.height || !ebiten.IsFocused() {
		g.loop.ClearPointer()
		return
	}
	g.loop.SetPointer(float64(mx), float64(my))
}

func (g *game) updateControls() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.loop.ToggleOutline()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHelp = !g.showHelp
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.panel.Go(g.panel.Count)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.panel.Go(g.panel.Repulse)
	case repeating(ebiten.KeyUp):
		g.loop.NudgeCount(config.CountStep)
	case repeating(ebiten.KeyDown):
		g.loop.NudgeCount(-config.CountStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.loop.NudgeCount(config.CountPageStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.loop.NudgeCount(-config.CountPageStep)
	case repeating(ebiten.KeyEqual), repeating(ebiten.KeyNumpadAdd):
		g.loop.NudgeRepulseForce(config.RepulseStep)
	case repeating(ebiten.KeyMinus), repeating(ebiten.KeyNumpadSubtract):
		g.loop.NudgeRepulseForce(-config.RepulseStep)
	}
}

// repeating is true on press and then every few frames while the key is held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 20 && d%4 == 0)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	render.DrawEbiten(screen, g.frame, g.style)

	s := g.frame.Settings
	status := fmt.Sprintf("particles %d  repulse %.1f  outline %v  %s  %.0f fps",
		len(g.frame.Particles), s.RepulseForce, s.ShowOutline,
		formatDuration(simTime(g.frame.Tick)), ebiten.ActualFPS())
	if err := g.panel.Err(); err != nil {
		status += " | Error: " + err.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	if g.showHelp {
		ebitenutil.DebugPrintAt(screen,
			"Up/Down count  PgUp/PgDn count x50  N set count  +/- repulse  F set repulse  O outline  H help  Q quit",
			12, 28)
	}
}

// Layout follows the window size; a change relays the ring out.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.loop.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(loop *sim.Loop, title string, onFrame func(sim.Frame)) error {
	s := loop.Settings()
	ebiten.SetWindowSize(s.Width, s.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)

	if err := ebiten.RunGame(newGame(loop, onFrame)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
