package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/paintbrush/internal/shape"
	"github.com/example/paintbrush/internal/style"
	"github.com/example/paintbrush/internal/theme"
)

// Parse reads configuration from an io.Reader. Mode, stroke and color
// values are validated here so a typo in the rc file fails at startup.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if themeName, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var key, value string
		if k, v, ok := strings.Cut(line, "="); ok {
			key, value = k, v
		} else if k, v, ok := strings.Cut(line, ":"); ok {
			key, value = k, v
		} else {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "palette":
			err = addPaletteEntry(cfg, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "mode":
		if _, err := style.ParseMode(value); err != nil {
			return err
		}
		cfg.Mode = value
	case "stroke":
		if _, err := shape.ParseStrokeStyle(value); err != nil {
			return err
		}
		cfg.Stroke = value
	case "fill":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		cfg.Fill = &b
	case "color":
		cfg.Color = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "copy":
		n.Copy = b
	case "clear":
		n.Clear = b
	}
	return nil
}

func addPaletteEntry(cfg *Config, name, value string) error {
	col, err := theme.ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for palette entry %s: %w", name, err)
	}
	col.A = 255
	cfg.Palette = append(cfg.Palette, PaletteEntry{Name: name, Color: col})
	return nil
}

// Apply registers the palette entries and validates the startup color.
// Colors are checked here rather than in Parse because the color may name a
// palette entry declared further down the file.
func (c *Config) Apply() error {
	for _, p := range c.Palette {
		style.EnsurePaletteColor(p.Color, p.Name)
	}
	if c.Color != "" {
		if _, err := style.ParseColor(c.Color); err != nil {
			return fmt.Errorf("config color: %w", err)
		}
	}
	return nil
}
