package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/example/paintbrush/internal/board"
	"github.com/example/paintbrush/internal/config"
	"github.com/example/paintbrush/internal/notify"
	"github.com/example/paintbrush/internal/shape"
	"github.com/example/paintbrush/internal/style"
	"github.com/example/paintbrush/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	copyAlerts  bool
	clearAlerts bool
	themeName   string
	modeName    string
	strokeName  string
	colorName   string
	fill        bool
	activeTheme *theme.Theme
	stdout      io.Writer
	stderr      io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:     program,
		notifier:    r.notifier,
		config:      r.config,
		copyAlerts:  r.copyAlerts,
		clearAlerts: r.clearAlerts,
		themeName:   r.themeName,
		modeName:    r.modeName,
		strokeName:  r.strokeName,
		colorName:   r.colorName,
		fill:        r.fill,
		activeTheme: r.activeTheme,
		stdout:      r.stdout,
		stderr:      r.stderr,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	if err := cfg.Apply(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		cfg.Color = ""
	}
	return newRootWith(cfg, notify.New(notify.LoadPreferences()), os.Stdout, os.Stderr)
}

func newRootWith(cfg *config.Config, n *notify.Notifier, stdout, stderr io.Writer) *root {
	r := &root{
		fs:       flag.NewFlagSet("paintbrush", flag.ExitOnError),
		program:  "paintbrush",
		notifier: n,
		config:   cfg,
		stdout:   stdout,
		stderr:   stderr,
	}
	r.fs.SetOutput(stderr)
	fill := false
	if cfg.Fill != nil {
		fill = *cfg.Fill
	}
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.clearAlerts, "notify-clear", cfg.Notify.Clear, "show a desktop notification after clearing the board")

	// Precedence: CLI > Env > Config > Default
	// The theme flag defaults to "" and the fallback happens in Run.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.EmbeddedNames(), ", ")+")")
	r.fs.StringVar(&r.modeName, "mode", orDefault(cfg.Mode, style.ModeLine.String()), "initial drawing mode ("+strings.Join(style.ModeNames(), ", ")+")")
	r.fs.StringVar(&r.strokeName, "stroke", orDefault(cfg.Stroke, shape.Solid.String()), "initial stroke style (Solid, Dotted)")
	r.fs.StringVar(&r.colorName, "color", orDefault(cfg.Color, "black"), "initial color: palette name, color name or #RRGGBB")
	r.fs.BoolVar(&r.fill, "fill", fill, "fill rectangles and ovals")
	r.fs.Usage = usageFunc(r)
	return r
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventClear, r.clearAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "window":
		cmd, err = parseWindowCmd(subArgs, r)
	case "tui":
		cmd, err = parseTUICmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "modes":
		cmd, err = parseModesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("PAINTBRUSH_THEME")
	}
	if themeName == "" {
		themeName = r.config.Theme
	}
	if themeName == "" {
		return theme.Default()
	}
	// Config sections win over files of the same name.
	if t, ok := r.config.Themes[themeName]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		if themeName != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		return theme.Default()
	}
	return t
}

// newBoard builds a board with the selection from flags and config.
func (r *root) newBoard(opts ...board.Option) (*board.Board, error) {
	mode, err := style.ParseMode(r.modeName)
	if err != nil {
		return nil, fmt.Errorf("-mode: %w", err)
	}
	stroke, err := shape.ParseStrokeStyle(r.strokeName)
	if err != nil {
		return nil, fmt.Errorf("-stroke: %w", err)
	}
	col, err := style.ParseColor(r.colorName)
	if err != nil {
		return nil, fmt.Errorf("-color: %w", err)
	}
	base := []board.Option{
		board.WithMode(mode),
		board.WithStrokeStyle(stroke),
		board.WithColor(col),
		board.WithFill(r.fill),
	}
	return board.New(append(base, opts...)...), nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) notifyCopy(img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy("drawing", img)
}

func (r *root) notifyClear(removed int) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Clear(removed)
}
