package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/example/paintbrush/internal/suggest"
)

// Loader handles loading themes from various sources.
type Loader struct {
	ConfigDir  string
	SystemDirs []string
}

// NewLoader creates a new Loader with the XDG user and system theme paths.
func NewLoader() *Loader {
	l := &Loader{ConfigDir: filepath.Join(xdg.ConfigHome, "paintbrush", "themes")}
	for _, dir := range xdg.DataDirs {
		l.SystemDirs = append(l.SystemDirs, filepath.Join(dir, "paintbrush", "themes"))
	}
	return l
}

// Load attempts to load a theme by name or path.
// Order:
// 1. If it's a file path that exists, load it.
// 2. Check embedded themes.
// 3. Check ConfigDir.
// 4. Check SystemDirs.
// An empty name yields Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}

	if _, err := os.Stat(name); err == nil {
		return parseFile(name)
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}

	if f, err := EmbeddedThemes.Open("defaults/" + strings.ToLower(filename)); err == nil {
		defer f.Close()
		return Parse(f)
	}

	dirs := append([]string{l.ConfigDir}, l.SystemDirs...)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return parseFile(path)
		}
	}

	return nil, fmt.Errorf("theme '%s' not found%s", name, suggest.Hint(name, EmbeddedNames()))
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}
