package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"wallclimb/internal/config"
	"wallclimb/internal/game"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	// A level path on the command line overrides WALLCLIMB_LEVEL.
	if len(os.Args) > 1 {
		cfg.Level = os.Args[1]
	}

	g := game.New(cfg)
	if err := g.Run(); err != nil {
		log.Fatalf("wallclimb: %v", err)
	}
}
