package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/iburimskiy/particle-ring/internal/sim"
)

// parsePointer reads "x,y". An empty string means no pointer.
func parsePointer(s string) (x, y float64, ok bool, err error) {
	if s == "" {
		return 0, 0, false, nil
	}
	xs, ys, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, false, fmt.Errorf("pointer %q: want x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, false, fmt.Errorf("pointer x: %w", err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, false, fmt.Errorf("pointer y: %w", err)
	}
	return x, y, true, nil
}

// runHeadless steps the loop without a window and writes a one-line summary to w.
func runHeadless(loop *sim.Loop, ticks int, pointer string, w io.Writer) error {
	x, y, ok, err := parsePointer(pointer)
	if err != nil {
		return err
	}
	if ok {
		loop.SetPointer(x, y)
	}

	f := loop.Snapshot()
	for i := 0; i < ticks; i++ {
		f = loop.Step()
	}
	log.Printf("headless run finished after %d ticks", f.Tick)

	_, err = fmt.Fprintf(w, "tick=%d particles=%d mean_home_distance=%.4f kinetic_energy=%.4f\n",
		f.Tick, len(f.Particles), loop.MeanHomeDistance(), f.KineticEnergy)
	return err
}
