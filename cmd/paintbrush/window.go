package main

import (
	"flag"
	"log"

	"github.com/example/paintbrush/internal/appstate"
)

// windowCmd opens the drawing board in a desktop window.
type windowCmd struct {
	*root
	fs     *flag.FlagSet
	width  int
	height int
}

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	fs.SetOutput(r.stderr)
	c := &windowCmd{root: r.subcommand("window"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.width, "width", 900, "initial window width in pixels")
	fs.IntVar(&c.height, "height", 640, "initial window height in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || c.width <= 0 || c.height <= 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *windowCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *windowCmd) Run() error {
	b, err := c.newBoard()
	if err != nil {
		return err
	}
	st := appstate.New(
		appstate.WithBoard(b),
		appstate.WithTheme(c.activeTheme),
		appstate.WithNotifier(c.notifier),
		appstate.WithSize(c.width, c.height),
		appstate.WithOnClose(func() { log.Printf("window closed with %d shapes", b.Len()) }),
	)
	st.Run()
	return nil
}
