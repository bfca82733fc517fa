package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"patternlife/src/config"
	"patternlife/src/pattern"
	"patternlife/src/universe"
	"patternlife/src/view"
)

const defaultTemplate = "r-pentomino"

//EnvOptions are the command line options, zero values mean "not given"
type EnvOptions struct {
	configPath  string
	size        int
	backing     int
	interval    time.Duration
	maxSteps    int
	engine      string
	workers     int
	interactive bool
	randomData  bool
	patternPath string
	template    string
	x, y        int
}

func main() {
	eo := initOptions()

	cfg, err := loadConfig(eo)
	if err != nil {
		log.Fatal(err)
	}
	uo, err := cfg.UniverseOptions()
	if err != nil {
		log.Fatal(err)
	}
	lib, err := cfg.Library()
	if err != nil {
		log.Fatal(err)
	}

	var stateCh chan universe.Status
	if !cfg.Interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u, err := universe.NewBaseUniverse(uo, stateCh)
	if err != nil {
		log.Fatal(err)
	}
	for _, name := range lib.Names() {
		b, _ := lib.Get(name)
		if err := u.AddTemplate(name, b); err != nil {
			log.Fatal(err)
		}
	}

	template := eo.template
	if eo.patternPath != "" {
		b, err := pattern.Load(eo.patternPath)
		if err != nil {
			log.Fatal(err)
		}
		template = strings.TrimSuffix(filepath.Base(eo.patternPath), filepath.Ext(eo.patternPath))
		if err := u.AddTemplate(template, b); err != nil {
			log.Fatal(err)
		}
	}

	if cfg.Random {
		u.SettleWithRandomData()
	} else {
		if template == "" {
			template = defaultTemplate
		}
		b, ok := u.Templates().Get(template)
		if !ok {
			log.Fatalf("unknown template %q, known templates: %s", template, strings.Join(u.Templates().Names(), ", "))
		}
		x, y := placement(eo.x, eo.y, uo.VisibleSize, b)
		if err := u.SettleTemplate(template, x, y); err != nil {
			log.Fatal(err)
		}
	}

	if cfg.Interactive {
		v := view.NewViewTerminal()
		u.RegisterViewer(v)
		v.Start()
		u.Close()
		return
	}

	v := view.NewConsoleOut()
	u.RegisterViewer(v)
	v.Start()
	u.Run()
	for st := range stateCh {
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
	u.Close()
}

func initOptions() *EnvOptions {
	eo := &EnvOptions{x: -1, y: -1}
	flaggy.SetName("patternlife")
	flaggy.SetDescription("Conway's Game of Life with plaintext and RLE pattern import")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.configPath, "c", "config", "TOML configuration file")
	flaggy.Int(&eo.size, "s", "size", "Side of the visible area")
	flaggy.Int(&eo.backing, "b", "backing", "Side of the backing grid, 10% more than size by default")
	flaggy.Duration(&eo.interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&eo.maxSteps, "m", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.String(&eo.engine, "e", "engine", "Engine to use ["+strings.Join(universe.Engines(), "|")+"]")
	flaggy.Int(&eo.workers, "w", "workers", "Workers of the multithreaded engine")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.patternPath, "p", "pattern", "Pattern file to settle (.cells, .rle)")
	flaggy.String(&eo.template, "t", "template", "Built-in or configured pattern to settle")
	flaggy.Int(&eo.x, "x", "x", "Column of the pattern's top-left corner, centered by default")
	flaggy.Int(&eo.y, "y", "y", "Row of the pattern's top-left corner, centered by default")

	flaggy.Parse()

	if eo.engine != "" && !knownEngine(eo.engine) {
		flaggy.ShowHelpAndExit("unknown engine")
	}
	return eo
}

//loadConfig reads the configuration file, if any, and applies the command line over it
func loadConfig(eo *EnvOptions) (*config.Config, error) {
	cfg := config.Default()
	if eo.configPath != "" {
		var err error
		if cfg, err = config.Load(eo.configPath); err != nil {
			return nil, err
		}
	}
	applyFlags(cfg, eo)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("command line: %w", err)
	}
	return cfg, nil
}

//applyFlags overrides the configuration with the options given on the command line
func applyFlags(cfg *config.Config, eo *EnvOptions) {
	if eo.size != 0 {
		cfg.Size = eo.size
	}
	if eo.backing != 0 {
		cfg.Backing = eo.backing
	}
	if eo.interval != 0 {
		cfg.Interval = eo.interval.String()
	}
	if eo.maxSteps != 0 {
		cfg.MaxSteps = eo.maxSteps
	}
	if eo.engine != "" {
		cfg.Engine = eo.engine
	}
	if eo.workers != 0 {
		cfg.Workers = eo.workers
	}
	cfg.Interactive = cfg.Interactive || eo.interactive
	cfg.Random = cfg.Random || eo.randomData
}

//placement returns the top-left corner for the pattern
//negative coordinates center the pattern on that axis
func placement(x int, y int, visibleSize int, b pattern.Buffer) (int, int) {
	if x < 0 {
		x = (visibleSize - b.Width) / 2
	}
	if y < 0 {
		y = (visibleSize - b.Height) / 2
	}
	return x, y
}

func knownEngine(name string) bool {
	for _, e := range universe.Engines() {
		if e == name {
			return true
		}
	}
	return false
}
