package appstate

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/paintbrush/internal/board"
	"github.com/example/paintbrush/internal/shape"
	"github.com/example/paintbrush/internal/style"
	"github.com/example/paintbrush/internal/theme"
)

func newTestUI(t *testing.T, opts ...Option) (*ui, *board.Board) {
	t.Helper()
	b := board.New()
	opts = append([]Option{WithBoard(b), WithSize(400, 300), WithClipboard(func(image.Image) error { return nil })}, opts...)
	return newUI(New(opts...)), b
}

func press(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress}
}

func drag(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Direction: mouse.DirNone}
}

func release(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}
}

func findButton(t *testing.T, u *ui, label string) (int, Button) {
	t.Helper()
	for i, b := range u.buttons {
		switch v := unwrap(b).(type) {
		case *ChoiceButton:
			if v.label == label {
				return i, b
			}
		case *ActionButton:
			if v.label == label {
				return i, b
			}
		}
	}
	t.Fatalf("no %q button", label)
	return -1, nil
}

func center(r image.Rectangle) (float32, float32) {
	c := r.Min.Add(r.Max).Div(2)
	return float32(c.X), float32(c.Y)
}

func TestLayoutKeepsButtonsApart(t *testing.T) {
	u, _ := newTestUI(t)
	for i, a := range u.buttons {
		if a.Rect().Empty() {
			t.Fatalf("button %d has no rect", i)
		}
		if a.Rect().Max.X > u.toolbarWidth {
			t.Errorf("button %d overflows the toolbar: %v", i, a.Rect())
		}
		for j, b := range u.buttons[i+1:] {
			if a.Rect().Overlaps(b.Rect()) {
				t.Errorf("buttons %d and %d overlap: %v %v", i, i+1+j, a.Rect(), b.Rect())
			}
		}
	}
	if u.sheet.Min.X < u.toolbarWidth || u.sheet.Max.Y > u.height-statusHeight {
		t.Errorf("sheet %v overlaps the chrome", u.sheet)
	}
}

func TestDragOnSheetDrawsLine(t *testing.T) {
	u, b := newTestUI(t)
	x0, y0 := float32(u.sheet.Min.X+10), float32(u.sheet.Min.Y+20)
	u.handleMouse(press(x0, y0))
	if !u.handleMouse(drag(x0+30, y0)) {
		t.Fatal("drag should repaint the preview")
	}
	u.handleMouse(release(x0+60, y0))
	shapes := b.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	p1, p2 := shapes[0].Endpoints()
	if p1 != shape.Pt(10, 20) || p2 != shape.Pt(70, 20) {
		t.Fatalf("segment %v-%v, want sheet relative coordinates", p1, p2)
	}
}

func TestPressOutsideSheetIsIgnored(t *testing.T) {
	u, b := newTestUI(t)
	u.handleMouse(press(float32(u.width-2), 2))
	u.handleMouse(release(float32(u.sheet.Min.X+5), float32(u.sheet.Min.Y+5)))
	if b.Len() != 0 || b.Dragging() {
		t.Fatal("press in the margin started a gesture")
	}
}

func TestToolbarClickSelectsMode(t *testing.T) {
	u, b := newTestUI(t)
	_, oval := findButton(t, u, "Oval")
	x, y := center(oval.Rect())
	u.handleMouse(press(x, y))
	if b.Mode() != style.ModeLine {
		t.Fatal("button activated on press")
	}
	u.handleMouse(release(x, y))
	if b.Mode() != style.ModeOval {
		t.Fatalf("mode = %v", b.Mode())
	}
	if !isSelected(oval) {
		t.Error("oval button should show as selected")
	}

	_, noFill := findButton(t, u, "No Fill")
	_, fill := findButton(t, u, "Fill")
	fx, fy := center(fill.Rect())
	u.handleMouse(press(fx, fy))
	u.handleMouse(release(fx, fy))
	if !b.Fill() || isSelected(noFill) {
		t.Fatal("fill button did not enable fill")
	}
}

func TestReleaseOffButtonCancelsClick(t *testing.T) {
	u, b := newTestUI(t)
	_, clear := findButton(t, u, "Clear")
	b.PointerDown(0, 0)
	b.PointerUp(5, 5)
	x, y := center(clear.Rect())
	u.handleMouse(press(x, y))
	u.handleMouse(release(float32(u.sheet.Min.X+50), float32(u.sheet.Min.Y+50)))
	if b.Len() != 1 {
		t.Fatal("clear ran although the release left the button")
	}
}

func TestSwatchSelectsColor(t *testing.T) {
	u, b := newTestUI(t)
	for _, btn := range u.buttons {
		sw, ok := btn.(*SwatchButton)
		if !ok || sw.name != "Red" {
			continue
		}
		x, y := center(sw.Rect())
		u.handleMouse(press(x, y))
		u.handleMouse(release(x, y))
		if b.Color() != (color.RGBA{255, 0, 0, 255}) {
			t.Fatalf("color = %v", b.Color())
		}
		return
	}
	t.Fatal("no red swatch")
}

func TestKeyboardShortcuts(t *testing.T) {
	u, b := newTestUI(t)
	u.handleKey(key.Event{Rune: 'R', Modifiers: key.ModShift, Direction: key.DirPress})
	u.handleKey(key.Event{Rune: 'd', Direction: key.DirPress})
	u.handleKey(key.Event{Rune: 'f', Direction: key.DirPress})
	u.handleKey(key.Event{Rune: '4', Direction: key.DirPress})
	want := shape.Style{Color: color.RGBA{0, 0, 255, 255}, Stroke: shape.Dotted, Fill: true}
	if b.Mode() != style.ModeRectangle || b.Style() != want {
		t.Fatalf("selection %v %+v", b.Mode(), b.Style())
	}
	if u.handleKey(key.Event{Rune: 'p', Direction: key.DirRelease}) || b.Mode() != style.ModeRectangle {
		t.Fatal("key release should be ignored")
	}

	b.PointerDown(0, 0)
	b.PointerUp(10, 10)
	u.handleKey(key.Event{Code: key.CodeZ, Modifiers: key.ModControl, Direction: key.DirPress})
	if b.Len() != 0 {
		t.Fatal("ctrl+z did not undo")
	}
	u.handleKey(key.Event{Rune: 'u', Direction: key.DirPress})
	if u.message != "nothing to undo" {
		t.Errorf("message %q", u.message)
	}
}

func TestEscapeCancelsThenQuits(t *testing.T) {
	u, b := newTestUI(t)
	esc := key.Event{Code: key.CodeEscape, Rune: -1, Direction: key.DirPress}
	u.handleMouse(press(float32(u.sheet.Min.X+5), float32(u.sheet.Min.Y+5)))
	u.handleKey(esc)
	if b.Dragging() || u.quit {
		t.Fatal("escape should cancel the drag first")
	}
	u.handleMouse(release(float32(u.sheet.Min.X+50), float32(u.sheet.Min.Y+50)))
	if b.Len() != 0 {
		t.Fatal("release after cancel committed a shape")
	}
	u.handleKey(esc)
	if !u.quit {
		t.Fatal("second escape should quit")
	}
}

func TestCopyPublishesCommittedShapes(t *testing.T) {
	var got image.Image
	u, b := newTestUI(t, WithClipboard(func(img image.Image) error {
		got = img
		return nil
	}))
	b.SetFill(true)
	b.SetMode(style.ModeRectangle)
	b.PointerDown(0, 0)
	b.PointerUp(20, 20)
	b.PointerDown(100, 100)
	b.PointerMove(150, 150)

	u.handleKey(key.Event{Code: key.CodeC, Rune: 3, Modifiers: key.ModControl, Direction: key.DirPress})
	if got == nil {
		t.Fatal("clipboard not written")
	}
	if got.Bounds().Size() != u.sheet.Size() {
		t.Fatalf("copied %v, sheet %v", got.Bounds(), u.sheet)
	}
	if r, _, _, _ := got.At(10, 10).RGBA(); r>>8 > 32 {
		t.Error("committed rectangle missing from copy")
	}
	if r, _, _, _ := got.At(120, 120).RGBA(); r>>8 < 224 {
		t.Error("preview leaked into copy")
	}
	if !strings.Contains(u.message, "copied") {
		t.Errorf("message %q", u.message)
	}
}

func TestCopyFailureKeepsRunning(t *testing.T) {
	u, _ := newTestUI(t, WithClipboard(func(image.Image) error { return errors.New("no display") }))
	u.copy()
	if u.message != "copy failed" {
		t.Errorf("message %q", u.message)
	}
}

func TestToastSchedulesRepaint(t *testing.T) {
	u, _ := newTestUI(t, WithClipboard(func(image.Image) error { return errors.New("no display") }))
	var delays []time.Duration
	var pending []func()
	stopped := 0
	u.after = func(d time.Duration, f func()) func() bool {
		delays = append(delays, d)
		pending = append(pending, f)
		return func() bool { stopped++; return true }
	}

	u.undo()
	if len(delays) != 0 {
		t.Fatal("scheduled a repaint without an event loop")
	}

	wakes := 0
	u.wake = func() { wakes++ }
	u.undo()
	u.copy()
	if len(delays) != 2 || delays[0] != messageDuration || delays[1] != messageDuration {
		t.Fatalf("delays %v", delays)
	}
	if stopped != 1 {
		t.Fatalf("replaced toast stopped %d timers", stopped)
	}
	pending[1]()
	if wakes != 1 {
		t.Fatalf("expiry woke the loop %d times", wakes)
	}
	u.cancelToast()
	if stopped != 2 {
		t.Fatal("cancel left the timer running")
	}
}

func TestToolbarWidthIsPerWindow(t *testing.T) {
	wide, _ := newTestUI(t)
	wide.toolbarWidth = 150
	wide.resize(wide.width, wide.height)
	narrow, _ := newTestUI(t)
	if narrow.toolbarWidth == wide.toolbarWidth {
		t.Fatal("new window picked up another window's toolbar width")
	}
	if wide.sheet.Min.X != 150+sheetMargin {
		t.Fatalf("sheet %v ignores toolbar width", wide.sheet)
	}
	th := theme.Default()
	dst := image.NewRGBA(image.Rect(0, 0, wide.width, wide.height))
	composeFrame(dst, wide.frame())
	if got := dst.RGBAAt(145, wide.height-statusHeight-2); got != th.ToolbarBackground {
		t.Errorf("toolbar pixel %v", got)
	}
	dst = image.NewRGBA(image.Rect(0, 0, narrow.width, narrow.height))
	composeFrame(dst, narrow.frame())
	if got := dst.RGBAAt(narrow.toolbarWidth+2, narrow.height-statusHeight-2); got == th.ToolbarBackground {
		t.Errorf("narrow toolbar painted past its width: %v", got)
	}
}

func TestComposeFrame(t *testing.T) {
	th := theme.Default()
	u, b := newTestUI(t, WithTheme(th))
	b.PointerDown(10, 30)
	b.PointerUp(110, 30)
	dst := image.NewRGBA(image.Rect(0, 0, u.width, u.height))
	composeFrame(dst, u.frame())

	if got := dst.RGBAAt(u.sheet.Min.X+60, u.sheet.Min.Y+30); got.R > 64 {
		t.Errorf("line pixel %v", got)
	}
	if got := dst.RGBAAt(u.sheet.Min.X+60, u.sheet.Min.Y+80); got != th.Paper {
		t.Errorf("paper pixel %v", got)
	}
	if got := dst.RGBAAt(1, u.height-statusHeight-2); got != th.ToolbarBackground {
		t.Errorf("toolbar pixel %v", got)
	}
	if got := dst.RGBAAt(u.width-2, u.height-2); got != th.StatusBackground {
		t.Errorf("status pixel %v", got)
	}
	if got := dst.RGBAAt(u.width-2, 2); got != th.Background {
		t.Errorf("backdrop pixel %v", got)
	}
}

func TestResizeKeepsDrawing(t *testing.T) {
	u, b := newTestUI(t)
	b.PointerDown(0, 0)
	b.PointerUp(5, 5)
	u.resize(640, 480)
	if b.Len() != 1 {
		t.Fatal("resize dropped shapes")
	}
	if u.canvas.Image().Bounds().Size() != u.sheet.Size() {
		t.Fatalf("canvas %v sheet %v", u.canvas.Image().Bounds(), u.sheet)
	}
}

func TestShortcutFor(t *testing.T) {
	tests := []struct {
		ev   key.Event
		want KeyShortcut
	}{
		{key.Event{Rune: 'q'}, KeyShortcut{Rune: 'q'}},
		{key.Event{Rune: 'Q', Modifiers: key.ModShift}, KeyShortcut{Rune: 'q'}},
		{key.Event{Rune: 26, Code: key.CodeZ, Modifiers: key.ModControl}, KeyShortcut{Rune: 'z', Modifiers: key.ModControl}},
		{key.Event{Rune: -1, Code: key.CodeDeleteForward}, KeyShortcut{Code: key.CodeDeleteForward}},
	}
	for _, tt := range tests {
		if got := shortcutFor(tt.ev); got != tt.want {
			t.Errorf("shortcutFor(%+v) = %+v, want %+v", tt.ev, got, tt.want)
		}
	}
}
