package main

import (
	"flag"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/example/paintbrush/internal/term"
)

// tuiCmd runs the drawing board inside the terminal.
type tuiCmd struct {
	*root
	fs *flag.FlagSet
}

func parseTUICmd(args []string, r *root) (*tuiCmd, error) {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	fs.SetOutput(r.stderr)
	c := &tuiCmd{root: r.subcommand("tui"), fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *tuiCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *tuiCmd) Run() error {
	b, err := c.newBoard()
	if err != nil {
		return err
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	app := term.New(s, b)
	app.OnClear(c.notifyClear)
	return app.Run()
}
