package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/paintbrush/internal/shape"
	"github.com/example/paintbrush/internal/style"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
mode = rect
stroke = dotted
fill = true
color = teal

[notify]
copy = true
clear = false

[palette]
teal = #008080

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.Mode != "rect" || cfg.Stroke != "dotted" || cfg.Color != "teal" {
		t.Errorf("Unexpected selection: %q %q %q", cfg.Mode, cfg.Stroke, cfg.Color)
	}
	if cfg.Fill == nil || !*cfg.Fill {
		t.Error("Expected fill to be true")
	}

	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}
	if cfg.Notify.Clear {
		t.Error("Expected notify.clear to be false")
	}

	if len(cfg.Palette) != 1 || cfg.Palette[0].Color != (color.RGBA{0, 0x80, 0x80, 255}) {
		t.Errorf("Unexpected palette: %+v", cfg.Palette)
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}

	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"mode", "mode = spray\n", style.ErrUnknownMode},
		{"stroke", "stroke = wavy\n", shape.ErrUnknownStrokeStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !strings.Contains(err.Error(), "line 1 [root]") {
				t.Errorf("error %q does not name the line", err)
			}
		})
	}
	if _, err := Parse(strings.NewReader("[notify]\ncopy = maybe\n")); err == nil {
		t.Error("expected bad boolean to fail")
	}
	if _, err := Parse(strings.NewReader("[palette]\nmud = brown\n")); err == nil {
		t.Error("expected non hex palette color to fail")
	}
}

func TestApplyRegistersPalette(t *testing.T) {
	before := style.PaletteColors()
	t.Cleanup(func() { style.ResetPalette(before) })

	cfg, err := Parse(strings.NewReader("color = plum2\n[palette]\nplum2 = #DDA0DD\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := cfg.Apply(); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if style.PaletteIndex(color.RGBA{0xDD, 0xA0, 0xDD, 255}) < 0 {
		t.Error("palette entry was not registered")
	}

	bad := New()
	bad.Color = "#zz"
	if err := bad.Apply(); !errors.Is(err, style.ErrUnknownColor) {
		t.Errorf("Apply err = %v", err)
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
mode = oval
stroke = solid
fill = false
color = red

[notify]
copy = true
clear = true

[palette]
ochre = #CC7722

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
Shadow = #00000080
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme || cfg.Mode != cfg2.Mode || cfg.Stroke != cfg2.Stroke || cfg.Color != cfg2.Color {
		t.Errorf("Root mismatch:\n%+v\n%+v", cfg, cfg2)
	}
	if cfg2.Fill == nil || *cfg2.Fill != *cfg.Fill {
		t.Errorf("Fill mismatch: %v", cfg2.Fill)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if len(cfg2.Palette) != 1 || cfg2.Palette[0] != cfg.Palette[0] {
		t.Errorf("Palette mismatch: %+v vs %+v", cfg.Palette, cfg2.Palette)
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverridePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("mode = pencil\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("v1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q", got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != "pencil" {
		t.Errorf("mode = %q", cfg.Mode)
	}
}

func TestLoaderDevLocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, localRCFile), []byte("theme = dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("dev", filepath.Join(dir, "missing.rc"))
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("theme = %q", cfg.Theme)
	}
}
