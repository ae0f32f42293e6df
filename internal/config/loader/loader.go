// Package loader reads configuration files and environment variables into
// generic maps.
//
// TOML and YAML files are supported and chosen by file extension. Each
// source yields one layer; Merge stacks layers, later ones winning.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Source produces one layer of configuration.
type Source interface {
	// Load returns the layer, or nil, nil if the source doesn't exist.
	Load() (map[string]any, error)
}

// FileSystem reads configuration files. Tests substitute an in-memory one.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Format identifies a configuration file format.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor returns the format implied by the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// File is a configuration file source.
type File struct {
	fsys   FileSystem
	path   string
	format Format
}

// OpenFile returns the source for path, its format picked by extension.
// Nothing is read until Load. A nil fsys means the OS file system.
func OpenFile(fsys FileSystem, path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = OSFS{}
	}
	return &File{fsys: fsys, path: path, format: format}, nil
}

// Format returns the file's format.
func (f *File) Format() Format {
	return f.format
}

// Load reads and decodes the file. A missing file yields nil, nil.
func (f *File) Load() (map[string]any, error) {
	data, err := f.fsys.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", f.path, err)
	}
	return Decode(f.format, f.path, data)
}

// Decode parses data in format. source names the data in errors.
// An empty document decodes to an empty map.
func Decode(format Format, source string, data []byte) (map[string]any, error) {
	var out map[string]any
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &out)
	case FormatYAML:
		err = yaml.Unmarshal(data, &out)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, newParseError(source, err)
	}
	if out == nil {
		out = make(map[string]any)
	}
	return out, nil
}
