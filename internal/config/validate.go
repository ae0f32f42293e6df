package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/pixelstorm/internal/palette"
	"github.com/dshills/pixelstorm/internal/picture"
	"github.com/dshills/pixelstorm/internal/tool"
)

// logLevels are the accepted logging.level values.
var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if err := checkDimension("canvas.width", c.Canvas.Width); err != nil {
		return err
	}
	if err := checkDimension("canvas.height", c.Canvas.Height); err != nil {
		return err
	}
	if c.Canvas.CellSize < 0 || c.Canvas.CellSize > MaxCellSize {
		return &ValidationError{
			Field:   "canvas.cellSize",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxCellSize, c.Canvas.CellSize),
		}
	}
	if err := checkColor("canvas.background", c.Canvas.Background); err != nil {
		return err
	}
	if err := checkColor("editor.color", c.Editor.Color); err != nil {
		return err
	}
	for i, col := range c.Palette {
		if err := checkColor(fmt.Sprintf("palette.colors[%d]", i), col); err != nil {
			return err
		}
	}

	names := make(map[string]bool)
	for _, name := range c.Editor.Tools {
		if _, err := tool.Builtin(name); err != nil {
			return &ValidationError{Field: "editor.tools", Message: fmt.Sprintf("unknown built-in tool %q", name)}
		}
		if names[name] {
			return &ValidationError{Field: "editor.tools", Message: fmt.Sprintf("tool %q listed twice", name)}
		}
		names[name] = true
	}
	for i, s := range c.Scripts {
		field := fmt.Sprintf("scripts[%d]", i)
		if s.Name == "" || s.Path == "" {
			return &ValidationError{Field: field, Message: "needs a name and a path"}
		}
		if names[s.Name] {
			return &ValidationError{Field: field, Message: fmt.Sprintf("tool %q already defined", s.Name)}
		}
		names[s.Name] = true
	}
	if !slices.Contains(c.ToolNames(), c.Editor.Tool) {
		return &ValidationError{
			Field:   "editor.tool",
			Message: fmt.Sprintf("%q is not an enabled tool", c.Editor.Tool),
		}
	}

	if !logLevels[strings.ToLower(c.Logging.Level)] {
		return &ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q", c.Logging.Level),
		}
	}
	return nil
}

// ToolNames returns every enabled tool name, built-ins first.
func (c *Config) ToolNames() []string {
	names := make([]string, 0, len(c.Editor.Tools)+len(c.Scripts))
	names = append(names, c.Editor.Tools...)
	for _, s := range c.Scripts {
		names = append(names, s.Name)
	}
	return names
}

// PaletteOrDefault returns the configured palette, or the default one.
func (c *Config) PaletteOrDefault() palette.Palette {
	if len(c.Palette) == 0 {
		return palette.Default()
	}
	return palette.Palette(c.Palette)
}

func checkDimension(field string, v int) error {
	if v < 1 || v > MaxDimension {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxDimension, v),
		}
	}
	return nil
}

func checkColor(field string, c picture.Color) error {
	if !palette.Valid(c) {
		return &ValidationError{Field: field, Message: fmt.Sprintf("unknown color %q", c)}
	}
	return nil
}
