package app

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/pixelstorm/internal/config"
	"github.com/dshills/pixelstorm/internal/picture"
)

// Flags are the command line settings shared by the editor binaries.
// Zero values leave the configured setting alone.
type Flags struct {
	ConfigPath  string
	LogLevel    string
	LogFile     string
	Width       int
	Height      int
	CellSize    int
	Tool        string
	Color       string
	ShowVersion bool
	ShowHelp    bool
}

// Register defines the flags on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&f.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file")
	fs.IntVar(&f.Width, "width", 0, "Canvas width in cells")
	fs.IntVar(&f.Height, "height", 0, "Canvas height in cells")
	fs.IntVar(&f.CellSize, "cell-size", 0, "Size of one cell in host pixels")
	fs.StringVar(&f.Tool, "tool", "", "Initial tool")
	fs.StringVar(&f.Color, "color", "", "Initial drawing color")
	fs.BoolVar(&f.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&f.ShowVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&f.ShowHelp, "help", false, "Show help message")
	fs.BoolVar(&f.ShowHelp, "h", false, "Show help message (shorthand)")
}

// Config loads the configuration, applies the flags on top and validates
// the result.
func (f *Flags) Config() (*config.Config, error) {
	cfg, err := config.Load(config.Options{Path: f.ConfigPath})
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies the flags that were set over cfg.
func (f *Flags) Apply(cfg *config.Config) {
	if f.Width != 0 {
		cfg.Canvas.Width = f.Width
	}
	if f.Height != 0 {
		cfg.Canvas.Height = f.Height
	}
	if f.CellSize != 0 {
		cfg.Canvas.CellSize = f.CellSize
	}
	if f.Tool != "" {
		cfg.Editor.Tool = f.Tool
	}
	if f.Color != "" {
		cfg.Editor.Color = picture.Color(f.Color)
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Logging.File = f.LogFile
	}
}

// OpenLogger creates the logger described by cfg. Logs go to the configured
// file, or to fallback when none is set. The returned closer is never nil.
func OpenLogger(cfg config.LoggingConfig, fallback io.Writer) (*Logger, io.Closer, error) {
	out := fallback
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("opening log file: %w", err)
		}
		out = file
		closer = file
	}

	lc := DefaultLoggerConfig()
	lc.Level = ParseLogLevel(cfg.Level)
	lc.Output = out
	return NewLogger(lc), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
