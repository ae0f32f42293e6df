// Package main is the entry point for the windowed pixel editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/pixelstorm/internal/app"
	"github.com/dshills/pixelstorm/internal/editor"
	"github.com/dshills/pixelstorm/internal/renderer/backend/window"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var flags app.Flags
	flags.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Pixelstorm - pixel art editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pixelstorm-window [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flags.ShowHelp {
		flag.Usage()
		return 0
	}
	if flags.ShowVersion {
		fmt.Printf("Pixelstorm %s\n", version)
		return 0
	}

	cfg, err := flags.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closer, err := app.OpenLogger(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()

	application, err := app.New(app.Options{
		Config:          cfg,
		DefaultCellSize: editor.DefaultCellSize,
		Logger:          logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// The window is sized to the canvas once the editor renders.
	win := window.New("Pixelstorm", 640, 480)
	if err := application.SetBackend(win); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	// Run stays on the main goroutine; raylib needs its thread.
	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
