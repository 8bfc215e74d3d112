// Package appstate runs the drawing board in a desktop window using shiny.
package appstate

import (
	"fmt"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/paintbrush/internal/board"
	"github.com/example/paintbrush/internal/clipboard"
	"github.com/example/paintbrush/internal/notify"
	"github.com/example/paintbrush/internal/render"
	"github.com/example/paintbrush/internal/shape"
	"github.com/example/paintbrush/internal/style"
	"github.com/example/paintbrush/internal/theme"
)

const messageDuration = 2 * time.Second

// AppState holds application configuration for the UI.
type AppState struct {
	board    *board.Board
	theme    *theme.Theme
	notifier *notify.Notifier
	width    int
	height   int
	copyFn   func(image.Image) error

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithBoard sets the board the window edits.
func WithBoard(b *board.Board) Option { return func(a *AppState) { a.board = b } }

// WithTheme sets the window colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithNotifier sets the notifier used after copy and clear.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithSize sets the initial window size in pixels.
func WithSize(width, height int) Option {
	return func(a *AppState) { a.width, a.height = width, height }
}

// WithClipboard replaces the function used to publish the drawing.
func WithClipboard(fn func(image.Image) error) Option { return func(a *AppState) { a.copyFn = fn } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		width:  900,
		height: 640,
		copyFn: clipboard.WriteImage,
	}
	for _, o := range opts {
		o(a)
	}
	if a.board == nil {
		a.board = board.New()
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	return a
}

// Board returns the board edited by the window.
func (a *AppState) Board() *board.Board { return a.board }

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main opens the window on s and processes events until it is closed.
func (a *AppState) Main(s screen.Screen) {
	u := newUI(a)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: u.width, Height: u.height, Title: "PaintBrush"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()
	u.wake = func() { w.Send(paint.Event{}) }
	defer u.cancelToast()

	// Uploads happen off the event loop; only the newest frame is kept.
	frames := make(chan screen.Buffer, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for b := range frames {
			w.Upload(image.Point{}, b, b.Bounds())
			w.Publish()
			b.Release()
		}
	}()
	defer func() {
		close(frames)
		<-done
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			u.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			b, err := s.NewBuffer(image.Point{u.width, u.height})
			if err != nil {
				log.Printf("new buffer: %v", err)
				continue
			}
			composeFrame(b.RGBA(), u.frame())
			select {
			case old := <-frames:
				old.Release()
			default:
			}
			frames <- b
		case mouse.Event:
			if u.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if u.handleKey(e) {
				w.Send(paint.Event{})
			}
			if u.quit {
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

// ui is the window state confined to the event loop goroutine.
type ui struct {
	a             *AppState
	board         *board.Board
	width, height int
	sheet         image.Rectangle
	canvas        *render.Raster

	groups  [][]Button
	buttons []Button
	hover   int
	pressed int
	drawing bool

	actions map[string]func()
	keys    map[KeyShortcut]string

	toolbarWidth int

	message      string
	messageUntil time.Time
	// wake asks the event loop for a repaint; it is nil outside Main.
	wake      func()
	after     func(d time.Duration, f func()) (stop func() bool)
	stopToast func() bool

	quit bool
}

func newUI(a *AppState) *ui {
	u := &ui{a: a, board: a.board, hover: -1, pressed: -1, after: afterFunc}
	u.actions = map[string]func(){}
	u.keys = map[KeyShortcut]string{}
	u.buildToolbar()
	u.registerActions()
	u.resize(a.width, a.height)
	return u
}

func afterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

func (u *ui) register(name string, keys KeyboardShortcuts, fn func()) {
	u.actions[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			u.keys[sc] = name
		}
	}
}

func (u *ui) buildToolbar() {
	b := u.board
	var modes, strokes, fills, swatches, commands []Button
	var labels []string
	for _, m := range style.Modes() {
		modes = append(modes, &CacheButton{Button: &ChoiceButton{
			label:    m.String(),
			selected: func() bool { return b.Mode() == m },
			onSelect: func() { b.SetMode(m) },
		}})
		labels = append(labels, m.String())
	}
	for _, st := range shape.StrokeStyles() {
		strokes = append(strokes, &CacheButton{Button: &ChoiceButton{
			label:    st.String(),
			selected: func() bool { return b.StrokeStyle() == st },
			onSelect: func() { b.SetStrokeStyle(st) },
		}})
	}
	for _, on := range []bool{true, false} {
		label := "Fill"
		if !on {
			label = "No Fill"
		}
		fills = append(fills, &CacheButton{Button: &ChoiceButton{
			label:    label,
			selected: func() bool { return b.Fill() == on },
			onSelect: func() { b.SetFill(on) },
		}})
		labels = append(labels, label)
	}
	for _, pc := range style.PaletteColors() {
		swatches = append(swatches, &SwatchButton{
			name:     pc.Name,
			col:      pc.Color,
			selected: func() bool { return b.Color() == pc.Color },
			onSelect: func() { b.SetColor(pc.Color) },
		})
	}
	commands = []Button{
		&CacheButton{Button: &ActionButton{label: "Undo", onActivate: u.undo}},
		&CacheButton{Button: &ActionButton{label: "Clear", onActivate: u.clear}},
	}
	u.groups = [][]Button{modes, strokes, fills, swatches, commands}
	u.buttons = u.buttons[:0]
	for _, g := range u.groups {
		u.buttons = append(u.buttons, g...)
	}
	u.toolbarWidth = toolbarMinWidth(labels)
}

func (u *ui) registerActions() {
	b := u.board
	modeKeys := map[style.Mode]rune{
		style.ModeLine:      'l',
		style.ModeRectangle: 'r',
		style.ModeOval:      'o',
		style.ModePencil:    'p',
		style.ModeEraser:    'e',
	}
	for _, m := range style.Modes() {
		u.register("mode "+m.String(), shortcutList{{Rune: modeKeys[m]}}, func() { b.SetMode(m) })
	}
	u.register("solid", shortcutList{{Rune: 's'}}, func() { b.SetStrokeStyle(shape.Solid) })
	u.register("dotted", shortcutList{{Rune: 'd'}}, func() { b.SetStrokeStyle(shape.Dotted) })
	u.register("fill", shortcutList{{Rune: 'f'}}, func() { b.SetFill(!b.Fill()) })
	for i := 0; i < min(style.PaletteLen(), 9); i++ {
		u.register(fmt.Sprintf("color %d", i+1), shortcutList{{Rune: rune('1' + i)}}, func() {
			b.SetColor(style.PaletteColorAt(i))
		})
	}
	u.register("undo", shortcutList{{Rune: 'u'}, {Rune: 'z', Modifiers: key.ModControl}}, u.undo)
	u.register("clear", shortcutList{{Rune: 'c'}, {Code: key.CodeDeleteForward}}, u.clear)
	u.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, u.copy)
	u.register("quit", shortcutList{{Rune: 'q'}}, func() { u.quit = true })
	u.register("escape", shortcutList{{Code: key.CodeEscape}}, func() {
		if u.board.Dragging() {
			u.board.CancelGesture()
			u.drawing = false
			return
		}
		u.quit = true
	})
}

// resize recomputes the layout. The drawing is kept; only the visible sheet
// changes size.
func (u *ui) resize(width, height int) {
	u.width, u.height = max(width, 1), max(height, 1)
	layoutToolbar(u.groups, u.toolbarWidth)
	u.sheet = sheetRect(u.width, u.height, u.toolbarWidth)
	img := image.NewRGBA(image.Rect(0, 0, u.sheet.Dx(), u.sheet.Dy()))
	u.canvas = render.NewRaster(img, u.a.theme.Paper)
}

func (u *ui) toCanvas(x, y float32) shape.Point {
	return shape.Pt(float64(x)-float64(u.sheet.Min.X), float64(y)-float64(u.sheet.Min.Y))
}

// handleMouse applies a mouse event and reports whether a repaint is needed.
func (u *ui) handleMouse(e mouse.Event) bool {
	p := image.Point{int(e.X), int(e.Y)}
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		if i := buttonAt(u.buttons, p); i >= 0 {
			u.pressed = i
			return true
		}
		if !p.In(u.sheet) {
			return false
		}
		u.drawing = true
		c := u.toCanvas(e.X, e.Y)
		u.board.PointerDown(c.X, c.Y)
		return true
	case mouse.DirNone:
		if u.drawing {
			c := u.toCanvas(e.X, e.Y)
			u.board.PointerMove(c.X, c.Y)
			return true
		}
		if i := buttonAt(u.buttons, p); i != u.hover {
			u.hover = i
			return true
		}
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		if u.pressed >= 0 {
			i := u.pressed
			u.pressed = -1
			if buttonAt(u.buttons, p) == i {
				u.buttons[i].Activate()
			}
			return true
		}
		if u.drawing {
			u.drawing = false
			c := u.toCanvas(e.X, e.Y)
			u.board.PointerUp(c.X, c.Y)
			return true
		}
	}
	return false
}

// handleKey runs the action bound to e and reports whether a repaint is needed.
func (u *ui) handleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	name, ok := u.keys[shortcutFor(e)]
	if !ok {
		return false
	}
	u.actions[name]()
	return true
}

func (u *ui) flash(msg string) {
	u.toast(msg)
	log.Print(msg)
}

// toast shows msg over the sheet and schedules the repaint that hides it.
func (u *ui) toast(msg string) {
	u.message = msg
	u.messageUntil = time.Now().Add(messageDuration)
	u.cancelToast()
	if u.wake != nil {
		u.stopToast = u.after(messageDuration, u.wake)
	}
}

func (u *ui) cancelToast() {
	if u.stopToast != nil {
		u.stopToast()
		u.stopToast = nil
	}
}

func (u *ui) undo() {
	if !u.board.Undo() {
		u.flash("nothing to undo")
	}
}

func (u *ui) clear() {
	n := u.board.Clear()
	u.a.notifier.Clear(n)
	u.flash(fmt.Sprintf("cleared %d shapes", n))
}

// snapshot renders the committed shapes without any in-progress preview.
func (u *ui) snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, u.sheet.Dx(), u.sheet.Dy()))
	render.Pass(render.NewRaster(img, u.a.theme.Paper), u.board.Shapes())
	return img
}

func (u *ui) copy() {
	img := u.snapshot()
	if err := u.a.copyFn(img); err != nil {
		log.Printf("copy: %v", err)
		u.toast("copy failed")
		return
	}
	u.a.notifier.Copy("drawing", img)
	u.flash("drawing copied to clipboard")
}

func (u *ui) status() string {
	parts := []string{u.board.Selection(), fmt.Sprintf("%d shapes", u.board.Len())}
	if u.board.Dragging() {
		parts = append(parts, "esc cancel")
	}
	parts = append(parts, "ctrl+c copy", "q quit")
	return strings.Join(parts, " | ")
}

func (u *ui) frame() frame {
	u.board.Render(u.canvas)
	states := make([]ButtonState, len(u.buttons))
	for i, b := range u.buttons {
		switch {
		case i == u.pressed:
			states[i] = StatePressed
		case isSelected(b):
			states[i] = StateActive
		case i == u.hover:
			states[i] = StateHover
		}
	}
	return frame{
		width:        u.width,
		height:       u.height,
		toolbarWidth: u.toolbarWidth,
		theme:        u.a.theme,
		canvas:       u.canvas.Image(),
		sheet:        u.sheet,
		buttons:      u.buttons,
		states:       states,
		status:       u.status(),
		message:      u.message,
		messageUntil: u.messageUntil,
	}
}

func isSelected(b Button) bool {
	s, ok := b.(selectable)
	return ok && s.Selected()
}
