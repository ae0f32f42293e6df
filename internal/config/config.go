package config

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/dshills/pixelstorm/internal/config/loader"
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/tool"
)

// Limits on canvas settings.
const (
	MaxDimension = 1024
	MaxCellSize  = 64
)

// Config holds the complete startup configuration.
type Config struct {
	Canvas  CanvasConfig
	Editor  EditorConfig
	Palette []picture.Color
	Scripts []ScriptConfig
	Logging LoggingConfig
}

// CanvasConfig describes the initial picture and how it is drawn.
type CanvasConfig struct {
	Width      int
	Height     int
	Background picture.Color
	// CellSize is the size of one cell in host pixels. Zero leaves the
	// choice to the host.
	CellSize int
}

// EditorConfig selects the initial tool and color and the enabled tools.
type EditorConfig struct {
	Tool  string
	Color picture.Color
	// Tools lists the enabled built-in tools in display order.
	Tools []string
}

// ScriptConfig names a Lua tool.
type ScriptConfig struct {
	Name string
	Path string
}

// LoggingConfig configures the log output.
type LoggingConfig struct {
	Level string
	File  string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:      60,
			Height:     30,
			Background: "#f0f0f0",
		},
		Editor: EditorConfig{
			Tool:  tool.NameDraw,
			Color: "#000000",
			Tools: tool.BuiltinNames(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Options controls where Load looks.
type Options struct {
	// Path is the config file. Empty means no file.
	Path string
	// FS reads the config file. Defaults to the OS file system.
	FS loader.FileSystem
	// SkipEnv ignores environment variables.
	SkipEnv bool
}

// Load builds a configuration from defaults, the file and the environment.
// The result is not validated; callers apply flags and then call Validate.
func Load(opts Options) (*Config, error) {
	var layers []map[string]any

	if opts.Path != "" {
		file, err := loader.OpenFile(opts.FS, opts.Path)
		if err != nil {
			return nil, err
		}
		data, err := file.Load()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, opts.Path)
		}
		layers = append(layers, data)
	}

	if !opts.SkipEnv {
		env, err := loader.NewEnvLoader(loader.EnvPrefix).Load()
		if err != nil {
			return nil, err
		}
		layers = append(layers, env)
	}

	merged := loader.Merge(layers...)

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}

	if opts.Path != "" {
		dir := filepath.Dir(opts.Path)
		for i, s := range cfg.Scripts {
			if s.Path != "" && !filepath.IsAbs(s.Path) {
				cfg.Scripts[i].Path = filepath.Join(dir, s.Path)
			}
		}
	}

	return cfg, nil
}

// apply copies the settings present in data over c.
func (c *Config) apply(data map[string]any) error {
	d := decoder{data: data}

	d.getInt("canvas.width", &c.Canvas.Width)
	d.getInt("canvas.height", &c.Canvas.Height)
	d.getInt("canvas.cellSize", &c.Canvas.CellSize)
	d.getColor("canvas.background", &c.Canvas.Background)
	d.getString("editor.tool", &c.Editor.Tool)
	d.getColor("editor.color", &c.Editor.Color)
	d.getStrings("editor.tools", &c.Editor.Tools)
	d.getColors("palette.colors", &c.Palette)
	d.getString("logging.level", &c.Logging.Level)
	d.getString("logging.file", &c.Logging.File)
	d.getScripts("scripts", &c.Scripts)

	return d.err
}

// decoder reads typed values out of a merged map, keeping the first error.
type decoder struct {
	data map[string]any
	err  error
}

func (d *decoder) lookup(path string) (any, bool) {
	if d.err != nil {
		return nil, false
	}
	return loader.Get(d.data, path)
}

func (d *decoder) fail(path, want string, got any) {
	d.err = &TypeError{Field: path, Want: want, Got: got}
}

func (d *decoder) getInt(path string, dst *int) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case float64:
		if n != math.Trunc(n) {
			d.fail(path, "integer", v)
			return
		}
		*dst = int(n)
	default:
		d.fail(path, "integer", v)
	}
}

func (d *decoder) getString(path string, dst *string) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		d.fail(path, "string", v)
		return
	}
	*dst = s
}

func (d *decoder) getColor(path string, dst *picture.Color) {
	var s string
	d.getString(path, &s)
	if s != "" {
		*dst = picture.Color(s)
	}
}

func (d *decoder) getStrings(path string, dst *[]string) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	list, ok := v.([]any)
	if !ok {
		d.fail(path, "list of strings", v)
		return
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			d.fail(path, "list of strings", item)
			return
		}
		out = append(out, s)
	}
	*dst = out
}

func (d *decoder) getColors(path string, dst *[]picture.Color) {
	var names []string
	d.getStrings(path, &names)
	if names == nil {
		return
	}
	out := make([]picture.Color, len(names))
	for i, n := range names {
		out[i] = picture.Color(n)
	}
	*dst = out
}

func (d *decoder) getScripts(path string, dst *[]ScriptConfig) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	list, ok := v.([]any)
	if !ok {
		d.fail(path, "list of tables", v)
		return
	}

	out := make([]ScriptConfig, 0, len(list))
	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			d.fail(fmt.Sprintf("%s[%d]", path, i), "table", item)
			return
		}
		name, _ := entry["name"].(string)
		file, _ := entry["path"].(string)
		out = append(out, ScriptConfig{Name: name, Path: file})
	}
	*dst = out
}
