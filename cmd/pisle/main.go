package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/osse101/pisle-planner/internal/cli"
	"github.com/osse101/pisle-planner/internal/config"
	"github.com/osse101/pisle-planner/internal/game"
	"github.com/osse101/pisle-planner/internal/planner"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	tunables, err := game.Load(os.Getenv(config.EnvGameConfig))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry := newRegistry(planner.NewEngine(tunables), newOutput(os.Stdout))
	if err := registry.Dispatch(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, cli.ErrNoCommand) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRegistry(engine *planner.Engine, out *output) *cli.Registry {
	r := cli.NewRegistry("pisle")
	r.Register(&UpgradeCommand{engine: engine, out: out})
	r.Register(&EvolveCommand{engine: engine, out: out})
	r.Register(&PenguinCommand{engine: engine, out: out})
	r.Register(&ExportCommand{out: out})
	r.Register(&ImportCommand{engine: engine, out: out})
	r.Register(&HabitatsCommand{engine: engine, out: out})
	return r
}
