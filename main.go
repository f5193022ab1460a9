package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-ring/internal/audio"
	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/game"
	"github.com/iburimskiy/particle-ring/internal/sim"
	"github.com/iburimskiy/particle-ring/internal/termview"
)

const windowTitle = "Particle Ring - move the mouse through the ring, H for help"

var (
	configPath = flag.String("config", "", "JSON settings file")
	count      = flag.Int("count", config.DefaultCount, "number of particles (1-999)")
	repulse    = flag.Float64("repulse", config.DefaultRepulse, "pointer repulsion strength (0-10)")
	outline    = flag.Bool("outline", true, "draw the outline through the particles")
	palette    = flag.String("palette", config.DefaultPalette, "particle colors: mono or rainbow")
	colorHex   = flag.String("color", config.DefaultColor, "base color as #rrggbb")
	seed       = flag.Int64("seed", 0, "random seed for particle sizes (0 = time based)")
	terminal   = flag.Bool("term", false, "render in the terminal instead of a window")
	sound      = flag.Bool("sound", false, "play a hum that follows the ring's motion")
	headless   = flag.Bool("headless", false, "run without graphics and print a summary")
	ticks      = flag.Int("ticks", 600, "ticks to run with -headless")
	pointer    = flag.String("pointer", "", "fixed pointer x,y for -headless")
	debug      = flag.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debug, logDir); logFile != nil {
		defer logFile.Close()
	}

	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	if settings.Seed == 0 {
		settings.Seed = time.Now().UnixNano()
	}
	log.Printf("starting: %+v", settings)

	loop := sim.New(settings, rand.New(rand.NewSource(settings.Seed)))

	if *headless {
		loop.Resize(settings.Width, settings.Height)
		if err := runHeadless(loop, *ticks, *pointer, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Headless run failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	onFrame := startHum()

	if *terminal {
		if err := runTerminal(loop, onFrame); err != nil {
			fmt.Fprintf(os.Stderr, "Terminal failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := game.Run(loop, windowTitle, onFrame); err != nil {
		log.Printf("game stopped: %v", err)
		fmt.Fprintf(os.Stderr, "Game failed: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings layers defaults, the optional config file and explicitly set flags.
func loadSettings() (config.Settings, error) {
	s := config.Default()
	if *configPath != "" {
		var err error
		if s, err = config.Load(*configPath); err != nil {
			return s, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "count":
			s.Count = *count
		case "repulse":
			s.RepulseForce = *repulse
		case "outline":
			s.ShowOutline = *outline
		case "palette":
			s.Palette = *palette
		case "color":
			s.Color = *colorHex
		case "seed":
			s.Seed = *seed
		}
	})
	return s.Normalize(), nil
}

// startHum starts the optional audio and returns the per-frame hook feeding it.
func startHum() func(sim.Frame) {
	if !*sound {
		return nil
	}
	h := audio.NewHum(audio.SampleRate)
	if err := audio.Start(h); err != nil {
		// Non-fatal, the ring runs without sound
		log.Printf("audio initialization failed: %v", err)
		return nil
	}
	return func(f sim.Frame) {
		h.SetLevel(audio.LevelFromEnergy(f.KineticEnergy))
	}
}

func runTerminal(loop *sim.Loop, onFrame func(sim.Frame)) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	app := termview.NewApp(screen, loop)
	app.OnFrame = onFrame
	app.Run()
	return nil
}
