package app

import (
	"github.com/dshills/pixelstorm/internal/config"
	"github.com/dshills/pixelstorm/internal/tool"
	"github.com/dshills/pixelstorm/internal/tool/script"
)

// BuildTools registers the enabled built-in tools followed by the scripted
// ones. On error every script loaded so far is closed.
func BuildTools(cfg *config.Config, logger *Logger) (*tool.Registry, []*script.Script, error) {
	reg := tool.NewRegistry()

	for _, name := range cfg.Editor.Tools {
		t, err := tool.Builtin(name)
		if err != nil {
			return nil, nil, err
		}
		if err := reg.Register(name, t); err != nil {
			return nil, nil, err
		}
	}

	var scripts []*script.Script
	fail := func(err error) (*tool.Registry, []*script.Script, error) {
		for _, s := range scripts {
			_ = s.Close()
		}
		return nil, nil, err
	}

	for _, sc := range cfg.Scripts {
		s, err := script.LoadFile(sc.Name, sc.Path, script.WithLogger(logger))
		if err != nil {
			return fail(err)
		}
		scripts = append(scripts, s)
		if err := reg.Register(sc.Name, s); err != nil {
			return fail(err)
		}
		logger.Debug("loaded script tool %s from %s", sc.Name, sc.Path)
	}

	return reg, scripts, nil
}
