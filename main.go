package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"

	"signalbox/pkg/config"
	"signalbox/pkg/engine/input"
	"signalbox/pkg/render"
	"signalbox/pkg/render/tui"
	"signalbox/pkg/scenario"
	"signalbox/pkg/sim"
)

const (
	minDelay = 50 * time.Millisecond
	maxDelay = 5 * time.Second
)

func initGettext() {
	gotext.Configure("mo/", "en_GB.utf8", "default")
}

func main() {
	scenarioPath := flag.String("scenario", "scenarios/two-blocks.json", "scenario file to load")
	configPath := flag.String("config", "signalbox.yml", "tuning config file (optional)")
	steps := flag.Int("steps", 0, "number of ticks to run, 0 for forever")
	delay := flag.Duration("delay", 500*time.Millisecond, "delay between ticks")
	flag.Parse()

	initGettext()

	render.SetRenderer(tui.New())
	render.Init()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "signalbox: %v\n", err)
		os.Exit(1)
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "signalbox: %v\n", err)
		os.Exit(1)
	}

	w, err := sc.BuildWorld(cfg.BlockSettings())
	if err != nil {
		fmt.Fprintf(os.Stderr, "signalbox: %v\n", err)
		os.Exit(1)
	}

	w.AddMessage(render.FormatText("GT{LOADED} %v", sc.Name))

	keys := keyChannel()
	paused := false

	for tick := 0; *steps == 0 || tick < *steps; {
		render.Clear()
		render.RenderFrame(w)

		select {
		case code := <-keys:
			switch input.MapToAction(code) {
			case input.ActionQuit:
				return
			case input.ActionTogglePause:
				paused = !paused
			case input.ActionStepOnce:
				w.Step()
				tick++
			case input.ActionFaster:
				if *delay/2 >= minDelay {
					*delay /= 2
				}
			case input.ActionSlower:
				if *delay*2 <= maxDelay {
					*delay *= 2
				}
			}
		case <-time.After(*delay):
			if !paused {
				w.Step()
				tick++
			}
		}
	}

	render.Clear()
	render.RenderFrame(w)
	printSummary(w)
}

// keyChannel feeds keypresses from the terminal, or stays silent when
// stdin is not a terminal so scripted runs free-run on the tick timer.
func keyChannel() <-chan string {
	keys := make(chan string)

	if !input.IsInteractive() {
		return keys
	}

	go func() {
		for {
			code, err := input.ReadKey()
			if err != nil {
				return
			}
			if code != "" {
				keys <- code
			}
		}
	}()

	return keys
}

func printSummary(w *sim.World) {
	fmt.Printf("%v\n", render.StyleText(gotext.Get("Run complete"), render.StyleAction))
	fmt.Printf("%v: %d\n", gotext.Get("Ticks"), w.Steps)
	fmt.Printf("%v: %d\n", gotext.Get("Trains"), w.Trains.Len())
}
