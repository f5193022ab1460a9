// Package prompt asks the user for new control values through native entry dialogs.
package prompt

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// Asker shows an entry dialog and returns the text typed by the user.
type Asker func(title, text, initial string) (string, error)

// Zenity is the default Asker.
func Zenity(title, text, initial string) (string, error) {
	return zenity.Entry(text, zenity.Title(title), zenity.EntryText(initial))
}

// Target receives validated values.
type Target interface {
	SetCount(n int) int
	SetRepulseForce(f float64)
	Settings() config.Settings
}

// Panel runs at most one dialog at a time.
type Panel struct {
	target Target
	ask    Asker
	busy   atomic.Bool

	mu      sync.Mutex
	lastErr error
}

func NewPanel(target Target, ask Asker) *Panel {
	if ask == nil {
		ask = Zenity
	}
	return &Panel{target: target, ask: ask}
}

// Count asks for a particle count and rebuilds the ring with it.
func (p *Panel) Count() error {
	cur := p.target.Settings().Count
	text, err := p.ask("Particles", fmt.Sprintf("Particle count (%d-%d)", config.MinCount, config.MaxCount), strconv.Itoa(cur))
	if err != nil {
		return p.dialogErr(err)
	}
	n := p.target.SetCount(config.ParseCount(text))
	log.Printf("particle count set to %d", n)
	return nil
}

// Repulse asks for the pointer repulsion strength.
func (p *Panel) Repulse() error {
	cur := p.target.Settings().RepulseForce
	text, err := p.ask("Repulsion", fmt.Sprintf("Repulsion strength (%g-%g)", config.MinRepulse, config.MaxRepulse), strconv.FormatFloat(cur, 'g', -1, 64))
	if err != nil {
		return p.dialogErr(err)
	}
	f := config.ParseRepulse(text)
	p.target.SetRepulseForce(f)
	log.Printf("repulse force set to %g", f)
	return nil
}

func (p *Panel) dialogErr(err error) error {
	if errors.Is(err, zenity.ErrCanceled) {
		return nil
	}
	return fmt.Errorf("entry dialog: %w", err)
}

// Go runs fn on its own goroutine unless another dialog is open. It reports whether fn
// was started.
func (p *Panel) Go(fn func() error) bool {
	if !p.busy.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer p.busy.Store(false)
		err := fn()
		if err != nil {
			log.Printf("prompt failed: %v", err)
		}
		p.mu.Lock()
		p.lastErr = err
		p.mu.Unlock()
	}()
	return true
}

func (p *Panel) Busy() bool { return p.busy.Load() }

// Err is the result of the last dialog.
func (p *Panel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
