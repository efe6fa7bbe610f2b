package main

import (
	"fmt"
	"os"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/window"
)

func main() {
	settings, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(settings.Log.File, settings.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(log)

	g := loop.NewGame(loop.GameOptions{
		Grid:     settings.GridModel(),
		Boundary: settings.BoundaryMode(),
		Seed:     settings.RandSeed(),
		Logger:   log,
	})

	log.Infow("window started", "boundary", settings.Boundary, "tickRate", settings.TickRate)
	if err := window.Run(g, settings.TickRate); err != nil {
		log.Errorw("window error", "error", err)
		fmt.Fprintf(os.Stderr, "window error: %v\n", err)
		os.Exit(1)
	}
	log.Infow("window closed", "best", g.Best)
}
