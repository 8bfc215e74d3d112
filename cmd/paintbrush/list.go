package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/paintbrush/internal/style"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	fs.SetOutput(r.stderr)
	cmd := &colorsCmd{root: r.subcommand("colors"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := style.PaletteColors()
	if len(palette) == 0 {
		fmt.Fprintln(c.stdout, "no colors available")
		return nil
	}
	selected, err := style.ParseColor(c.colorName)
	if err != nil {
		return fmt.Errorf("-color: %w", err)
	}
	fmt.Fprintln(c.stdout, "available palette colors (* marks the selected color):")
	for idx, entry := range palette {
		marker := " "
		if entry.Color == selected {
			marker = "*"
		}
		hex := style.Hex(entry.Color)
		name := entry.Name
		if name == "" {
			name = hex
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %2d: %-12s %s %s\n", marker, idx+1, name, hex, block)
	}
	fmt.Fprintln(c.stdout, "any CSS color name or #RRGGBB value is also accepted")
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type modesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseModesCmd(args []string, r *root) (*modesCmd, error) {
	fs := flag.NewFlagSet("modes", flag.ExitOnError)
	fs.SetOutput(r.stderr)
	cmd := &modesCmd{root: r.subcommand("modes"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

var modeHelp = map[style.Mode]string{
	style.ModeLine:      "drag to draw a straight line",
	style.ModeRectangle: "drag to draw a rectangle",
	style.ModeOval:      "drag to draw an oval inside the dragged box",
	style.ModePencil:    "drag to draw freehand",
	style.ModeEraser:    "press or drag to remove every shape under the pointer",
}

func (c *modesCmd) Run() error {
	selected, err := style.ParseMode(c.modeName)
	if err != nil {
		return fmt.Errorf("-mode: %w", err)
	}
	fmt.Fprintln(c.stdout, "drawing modes (* marks the selected mode):")
	for _, m := range style.Modes() {
		marker := " "
		if m == selected {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %-10s %s\n", marker, strings.ToLower(m.String()), modeHelp[m])
	}
	return nil
}

func (c *modesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
