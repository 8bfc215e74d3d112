package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/paintbrush/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Copy  bool
	Clear bool
}

// PaletteEntry is an extra named swatch from the [palette] section.
type PaletteEntry struct {
	Name  string
	Color color.RGBA
}

// Config holds the application configuration.
type Config struct {
	Theme string
	// Startup selection. Empty strings and a nil Fill keep the built in defaults.
	Mode   string
	Stroke string
	Color  string
	Fill   *bool

	Notify  Notify
	Palette []PaletteEntry
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Default to empty to allow fallback to Env/Default
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Mode != "" {
		fmt.Fprintf(&sb, "mode = %s\n", c.Mode)
	}
	if c.Stroke != "" {
		fmt.Fprintf(&sb, "stroke = %s\n", c.Stroke)
	}
	if c.Fill != nil {
		fmt.Fprintf(&sb, "fill = %v\n", *c.Fill)
	}
	if c.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Color)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "clear = %v\n", c.Notify.Clear)
	sb.WriteString("\n")

	if len(c.Palette) > 0 {
		sb.WriteString("[palette]\n")
		for _, p := range c.Palette {
			fmt.Fprintf(&sb, "%s = %s\n", p.Name, theme.Hex(p.Color))
		}
		sb.WriteString("\n")
	}

	// Sort keys for deterministic output
	themeNames := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
