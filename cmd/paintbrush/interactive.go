package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/example/paintbrush/internal/board"
	"github.com/example/paintbrush/internal/clipboard"
	"github.com/example/paintbrush/internal/render"
	"github.com/example/paintbrush/internal/style"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, "; ")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd drives a board from line commands read from stdin or -e.
type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	execs  commandList
	width  int
	height int
	stdin  io.Reader
	copyFn func(image.Image) error
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	fs.SetOutput(r.stderr)
	c := &interactiveCmd{root: r.subcommand("interactive"), fs: fs, stdin: os.Stdin, copyFn: clipboard.WriteImage}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	fs.IntVar(&c.width, "width", 640, "canvas width used by copy")
	fs.IntVar(&c.height, "height", 480, "canvas height used by copy")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || c.width <= 0 || c.height <= 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *interactiveCmd) Run() error {
	b, err := c.newBoard()
	if err != nil {
		return err
	}
	s := &session{cmd: c, board: b}
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := s.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := s.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// session is one board plus the command interpreter around it.
type session struct {
	cmd   *interactiveCmd
	board *board.Board
}

const sessionHelp = `commands:
  mode <line|rectangle|oval|pencil|eraser>
  stroke <solid|dotted>
  fill [on|off]
  color <name|#RRGGBB>
  down <x> <y> | move <x> <y> | up <x> <y>
  drag <x1> <y1> <x2> <y2> [<x> <y>...]
  erase <x> <y>
  hit <x> <y>
  undo | clear | list | status | copy
  help | exit
`

// executeLine runs one command. done reports that the session should end.
func (s *session) executeLine(line string) (done bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return false, nil
	}
	out := s.cmd.stdout
	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case "exit", "quit":
		return true, nil
	case "help", "?":
		fmt.Fprint(out, sessionHelp)
	case "mode":
		if len(rest) != 1 {
			return false, fmt.Errorf("mode: expected a mode name")
		}
		if err := s.board.SelectMode(rest[0]); err != nil {
			return false, err
		}
	case "stroke":
		if len(rest) != 1 {
			return false, fmt.Errorf("stroke: expected solid or dotted")
		}
		if err := s.board.SelectStrokeStyle(rest[0]); err != nil {
			return false, err
		}
	case "fill":
		on := !s.board.Fill()
		if len(rest) == 1 {
			switch strings.ToLower(rest[0]) {
			case "on", "true", "yes":
				on = true
			case "off", "false", "no":
				on = false
			default:
				return false, fmt.Errorf("fill: expected on or off, got %q", rest[0])
			}
		} else if len(rest) > 1 {
			return false, fmt.Errorf("fill: expected on or off")
		}
		s.board.SetFill(on)
	case "color", "colour":
		if len(rest) != 1 {
			return false, fmt.Errorf("color: expected a color")
		}
		if err := s.board.SelectColor(rest[0]); err != nil {
			return false, err
		}
	case "down", "move", "up":
		pts, err := parsePoints(name, rest, 1)
		if err != nil {
			return false, err
		}
		s.pointer(name, pts[0][0], pts[0][1])
	case "drag":
		pts, err := parsePoints(name, rest, 2)
		if err != nil {
			return false, err
		}
		last := len(pts) - 1
		s.pointer("down", pts[0][0], pts[0][1])
		for _, p := range pts[1:last] {
			s.pointer("move", p[0], p[1])
		}
		s.pointer("move", pts[last][0], pts[last][1])
		s.pointer("up", pts[last][0], pts[last][1])
	case "erase":
		pts, err := parsePoints(name, rest, 1)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "erased %d shapes\n", s.board.EraseAt(pts[0][0], pts[0][1]))
	case "hit":
		pts, err := parsePoints(name, rest, 1)
		if err != nil {
			return false, err
		}
		var hits []string
		for i, sh := range s.board.Shapes() {
			if sh.HitTest(pts[0][0], pts[0][1]) {
				hits = append(hits, strconv.Itoa(i))
			}
		}
		if len(hits) == 0 {
			fmt.Fprintln(out, "no shapes")
		} else {
			fmt.Fprintf(out, "hit %s\n", strings.Join(hits, " "))
		}
	case "undo":
		if s.board.Undo() {
			fmt.Fprintf(out, "undone, %d shapes\n", s.board.Len())
		} else {
			fmt.Fprintln(out, "nothing to undo")
		}
	case "clear":
		n := s.board.Clear()
		s.cmd.notifyClear(n)
		fmt.Fprintf(out, "cleared %d shapes\n", n)
	case "list":
		shapes := s.board.Shapes()
		if len(shapes) == 0 {
			fmt.Fprintln(out, "no shapes")
		}
		for i, sh := range shapes {
			fmt.Fprintf(out, "%3d: %s color=%s id=%s\n", i, sh, style.ColorName(sh.Color()), sh.ID())
		}
	case "status":
		fmt.Fprintf(out, "%s shapes=%d dragging=%v\n", s.board.Selection(), s.board.Len(), s.board.Dragging())
	case "copy":
		img := s.render()
		if err := s.cmd.copyFn(img); err != nil {
			return false, fmt.Errorf("copy: %w", err)
		}
		s.cmd.notifyCopy(img)
		fmt.Fprintln(out, "drawing copied to clipboard")
	default:
		return false, fmt.Errorf("unknown command %q (type 'help')", args[0])
	}
	return false, nil
}

func (s *session) pointer(event string, x, y float64) {
	before := s.board.Len()
	switch event {
	case "down":
		s.board.PointerDown(x, y)
	case "move":
		s.board.PointerMove(x, y)
	case "up":
		s.board.PointerUp(x, y)
	}
	after := s.board.Len()
	switch {
	case after > before:
		shapes := s.board.Shapes()
		for _, sh := range shapes[before:] {
			fmt.Fprintf(s.cmd.stdout, "added %s\n", sh)
		}
	case after < before:
		fmt.Fprintf(s.cmd.stdout, "erased %d shapes\n", before-after)
	}
}

// render draws the committed shapes onto a white canvas.
func (s *session) render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.cmd.width, s.cmd.height))
	render.Pass(render.NewRaster(img, color.RGBA{255, 255, 255, 255}), s.board.Shapes())
	return img
}

// parsePoints reads x y pairs; at least minPairs are required and single
// point commands take exactly one.
func parsePoints(cmd string, args []string, minPairs int) ([][2]float64, error) {
	if len(args)%2 != 0 || len(args)/2 < minPairs || (minPairs == 1 && len(args) != 2) {
		if minPairs == 1 {
			return nil, fmt.Errorf("%s: expected x y", cmd)
		}
		return nil, fmt.Errorf("%s: expected at least %d x y pairs", cmd, minPairs)
	}
	pts := make([][2]float64, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid x %q: %w", cmd, args[i], err)
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid y %q: %w", cmd, args[i+1], err)
		}
		if !isFinite(x) || !isFinite(y) {
			return nil, fmt.Errorf("%s: coordinates must be finite, got %s %s", cmd, args[i], args[i+1])
		}
		pts = append(pts, [2]float64{x, y})
	}
	return pts, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
