package term

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/example/paintbrush/internal/board"
	"github.com/example/paintbrush/internal/shape"
	"github.com/example/paintbrush/internal/style"
)

var paper = color.RGBA{255, 255, 255, 255}

// item is a clickable toolbar entry.
type item struct {
	label  string
	active func(*App) bool
	run    func(*App)
	x0, x1 int
}

// App is the terminal front end. The screen and board are only touched from
// the goroutine running Run or HandleEvent.
type App struct {
	screen  tcell.Screen
	board   *board.Board
	canvas  *Canvas
	canvasR image.Rectangle
	items   []item
	pressed bool
	// held is set while the button that clicked the toolbar is down.
	held    bool
	message string
	quit    bool
	onClear func(removed int)
}

// New wires b to screen. The screen must already be initialised.
func New(screen tcell.Screen, b *board.Board) *App {
	a := &App{screen: screen, board: b}
	a.items = toolbarItems()
	a.Resize()
	return a
}

func toolbarItems() []item {
	var items []item
	for _, m := range style.Modes() {
		items = append(items, item{
			label:  m.String(),
			active: func(a *App) bool { return a.board.Mode() == m },
			run:    func(a *App) { a.board.SetMode(m) },
		})
	}
	for _, st := range shape.StrokeStyles() {
		items = append(items, item{
			label:  st.String(),
			active: func(a *App) bool { return a.board.StrokeStyle() == st },
			run:    func(a *App) { a.board.SetStrokeStyle(st) },
		})
	}
	items = append(items,
		item{
			label:  "Fill",
			active: func(a *App) bool { return a.board.Fill() },
			run:    func(a *App) { a.board.SetFill(!a.board.Fill()) },
		},
		item{label: "Undo", run: func(a *App) { a.undo() }},
		item{label: "Clear", run: func(a *App) { a.clear() }},
	)
	return items
}

// Resize recomputes the layout after the screen size changed. The drawing is
// kept; only the visible area changes.
func (a *App) Resize() {
	w, h := a.screen.Size()
	a.canvasR = image.Rect(0, 1, w, max(h-1, 1))
	a.canvas = NewCanvas(a.canvasR.Dx(), a.canvasR.Dy(), paper)
}

// OnClear registers fn to run after the board was cleared.
func (a *App) OnClear(fn func(removed int)) { a.onClear = fn }

// Quit reports whether the user asked to leave.
func (a *App) Quit() bool { return a.quit }

// Run enables mouse reporting, processes events until the user quits and
// finalises the screen.
func (a *App) Run() error {
	a.screen.EnableMouse(tcell.MouseDragEvents)

	evCh := make(chan tcell.Event)
	quitCh := make(chan struct{})
	var wg sync.WaitGroup
	defer wg.Wait()
	// Fini unblocks PollEvent inside ChannelEvents.
	defer a.screen.Fini()
	defer close(quitCh)
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.screen.ChannelEvents(evCh, quitCh)
	}()

	a.Draw()
	for ev := range evCh {
		if err, ok := ev.(*tcell.EventError); ok {
			return fmt.Errorf("terminal event: %w", err)
		}
		a.HandleEvent(ev)
		if a.quit {
			return nil
		}
		a.Draw()
	}
	return nil
}

// HandleEvent applies one terminal event to the board.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.Resize()
		a.screen.Sync()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0
	cell := image.Pt(x, y).Sub(a.canvasR.Min)
	p := CellToPoint(cell.X, cell.Y)
	switch {
	case down && a.held:
	case down && !a.pressed:
		if y == 0 {
			a.held = true
			a.clickToolbar(x)
			return
		}
		if !image.Pt(x, y).In(a.canvasR) {
			return
		}
		a.pressed = true
		a.message = ""
		a.board.PointerDown(p.X, p.Y)
	case down:
		a.board.PointerMove(p.X, p.Y)
	case a.held:
		a.held = false
	case a.pressed:
		a.pressed = false
		a.board.PointerUp(p.X, p.Y)
	}
}

func (a *App) clickToolbar(x int) {
	for _, it := range a.items {
		if x >= it.x0 && x < it.x1 {
			it.run(a)
			return
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		a.quit = true
		return
	case tcell.KeyEscape:
		if a.board.Dragging() {
			a.board.CancelGesture()
			a.pressed = false
			return
		}
		a.quit = true
		return
	case tcell.KeyCtrlZ:
		a.undo()
		return
	case tcell.KeyRune:
	default:
		return
	}
	switch r := ev.Rune(); r {
	case 'q', 'Q':
		a.quit = true
	case 'l':
		a.board.SetMode(style.ModeLine)
	case 'r':
		a.board.SetMode(style.ModeRectangle)
	case 'o':
		a.board.SetMode(style.ModeOval)
	case 'p':
		a.board.SetMode(style.ModePencil)
	case 'e':
		a.board.SetMode(style.ModeEraser)
	case 's':
		a.board.SetStrokeStyle(shape.Solid)
	case 'd':
		a.board.SetStrokeStyle(shape.Dotted)
	case 'f':
		a.board.SetFill(!a.board.Fill())
	case 'u':
		a.undo()
	case 'c':
		a.clear()
	default:
		if r >= '1' && r <= '9' {
			idx := int(r - '1')
			if idx < style.PaletteLen() {
				a.board.SetColor(style.PaletteColorAt(idx))
			}
		}
	}
}

func (a *App) undo() {
	if !a.board.Undo() {
		a.message = "nothing to undo"
	}
}

func (a *App) clear() {
	n := a.board.Clear()
	a.message = fmt.Sprintf("cleared %d shapes", n)
	if a.onClear != nil {
		a.onClear(n)
	}
}

// Draw renders the toolbar, the canvas and the status line and shows them.
func (a *App) Draw() {
	w, _ := a.screen.Size()
	a.drawToolbar(w)
	a.board.Render(a.canvas)
	a.canvas.Blit(a.screen, a.canvasR.Min)
	a.drawStatus(w)
	a.screen.Show()
}

func (a *App) drawToolbar(w int) {
	base := tcell.StyleDefault.Reverse(true)
	fillRow(a.screen, 0, 0, w, base)
	x := 0
	for i := range a.items {
		it := &a.items[i]
		st := base
		if it.active != nil && it.active(a) {
			st = tcell.StyleDefault.Bold(true)
		}
		label := " " + it.label + " "
		it.x0 = x
		x += drawString(a.screen, x, 0, max(w-x, 0), label, st)
		it.x1 = x
	}
	for i, pc := range style.PaletteColors() {
		if x+3 > w || i >= 9 {
			break
		}
		st := tcell.StyleDefault.Background(tcellColor(pc.Color)).Foreground(tcell.ColorWhite)
		mark := fmt.Sprintf("%d", i+1)
		if pc.Color == a.board.Color() {
			mark = "*"
		}
		x += drawString(a.screen, x, 0, w-x, " "+mark+" ", st)
	}
}

func (a *App) drawStatus(w int) {
	_, h := a.screen.Size()
	y := h - 1
	if y < a.canvasR.Max.Y {
		return
	}
	st := tcell.StyleDefault.Reverse(true)
	fillRow(a.screen, 0, y, w, st)
	parts := []string{a.board.Selection(), fmt.Sprintf("%d shapes", a.board.Len())}
	if a.message != "" {
		parts = append(parts, a.message)
	}
	parts = append(parts, "q quit")
	drawString(a.screen, 0, y, w, strings.Join(parts, " | "), st)
}
