// Package main is the entry point for the terminal pixel editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/pixelstorm/internal/app"
	"github.com/dshills/pixelstorm/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()

	cfg, err := flags.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// The terminal is the UI, so logs go nowhere unless a file is named.
	logger, closer, err := app.OpenLogger(cfg.Logging, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()

	application, err := app.New(app.Options{
		Config:          cfg,
		DefaultCellSize: 1,
		Logger:          logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() *app.Flags {
	var flags app.Flags
	flags.Register(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Pixelstorm - pixel art editor for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pixelstorm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  t              Next tool\n")
		fmt.Fprintf(os.Stderr, "  c              Next color\n")
		fmt.Fprintf(os.Stderr, "  q, Esc, Ctrl-C Quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pixelstorm                        60x30 canvas\n")
		fmt.Fprintf(os.Stderr, "  pixelstorm -width 32 -height 16   Smaller canvas\n")
		fmt.Fprintf(os.Stderr, "  pixelstorm -c pixelstorm.toml     Load settings and Lua tools\n")
	}

	flag.Parse()

	if flags.ShowHelp {
		flag.Usage()
		os.Exit(0)
	}

	if flags.ShowVersion {
		fmt.Printf("Pixelstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return &flags
}
