package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/paintbrush/internal/render"
	"github.com/example/paintbrush/internal/theme"
)

const (
	statusHeight = 24
	buttonHeight = 22
	swatchSize   = 16
	sheetMargin  = 12

	minToolbarWidth = 72
)

var statusFace font.Face
var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	statusFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 13, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// KeyShortcut identifies a key press bound to an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// shortcutFor normalises a key event into the form used as map key. Letter
// runes are folded to lower case so Shift does not change the binding.
func shortcutFor(e key.Event) KeyShortcut {
	mods := e.Modifiers &^ key.ModShift
	if e.Rune > ' ' && e.Rune < 0x7f && mods == 0 {
		r := e.Rune
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return KeyShortcut{Rune: r}
	}
	if mods&key.ModControl != 0 && e.Code >= key.CodeA && e.Code <= key.CodeZ {
		return KeyShortcut{Rune: rune('a' + int(e.Code-key.CodeA)), Modifiers: mods}
	}
	return KeyShortcut{Code: e.Code, Modifiers: mods}
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateActive
)

// Button represents an interactive toolbar element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState, th *theme.Theme)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// selectable is implemented by buttons that reflect the current selection.
type selectable interface {
	Selected() bool
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [4]*image.RGBA
	th    *theme.Theme
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	if cb.th != th {
		cb.cache = [4]*image.RGBA{}
		cb.th = th
	}
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state, th)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [4]*image.RGBA{}
	}
}

// Selected forwards to the wrapped button.
func (cb *CacheButton) Selected() bool {
	if s, ok := cb.Button.(selectable); ok {
		return s.Selected()
	}
	return false
}

// ChoiceButton selects one value of a mode, stroke or fill choice.
type ChoiceButton struct {
	label    string
	rect     image.Rectangle
	selected func() bool
	onSelect func()
}

func (b *ChoiceButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	drawLabelButton(dst, b.rect, b.label, state, th)
}

func (b *ChoiceButton) Rect() image.Rectangle { return b.rect }

func (b *ChoiceButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ChoiceButton) Activate() {
	if b.onSelect != nil {
		b.onSelect()
	}
}

func (b *ChoiceButton) Selected() bool { return b.selected != nil && b.selected() }

// ActionButton runs a command such as Undo or Clear.
type ActionButton struct {
	label      string
	rect       image.Rectangle
	onActivate func()
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	drawLabelButton(dst, b.rect, b.label, state, th)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// SwatchButton selects a palette color.
type SwatchButton struct {
	name     string
	col      color.RGBA
	rect     image.Rectangle
	selected func() bool
	onSelect func()
}

func (b *SwatchButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	draw.Draw(dst, b.rect, image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	inner := b.rect.Inset(2)
	draw.Draw(dst, inner, image.NewUniform(b.col), image.Point{}, draw.Src)
	switch state {
	case StateActive:
		strokeRect(dst, b.rect, th.SwatchBorder, 2)
	case StateHover, StatePressed:
		strokeRect(dst, b.rect, th.ButtonBorder, 1)
	}
}

func (b *SwatchButton) Rect() image.Rectangle { return b.rect }

func (b *SwatchButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *SwatchButton) Activate() {
	if b.onSelect != nil {
		b.onSelect()
	}
}

func (b *SwatchButton) Selected() bool { return b.selected != nil && b.selected() }

func drawLabelButton(dst *image.RGBA, r image.Rectangle, label string, state ButtonState, th *theme.Theme) {
	bg, fg := th.ButtonBackground, th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	case StateActive:
		bg, fg = th.ButtonBackgroundActive, th.ButtonTextActive
	}
	draw.Draw(dst, r, image.NewUniform(bg), image.Point{}, draw.Src)
	strokeRect(dst, r, th.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13}
	w := d.MeasureString(label).Ceil()
	d.Dot = fixed.P(r.Min.X+(r.Dx()-w)/2, r.Min.Y+(r.Dy()+10)/2)
	d.DrawString(label)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	src := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

// toolbarMinWidth returns a toolbar width wide enough for every label.
func toolbarMinWidth(labels []string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := minToolbarWidth
	for _, lbl := range labels {
		w = max(w, d.MeasureString(lbl).Ceil()+12)
	}
	return w
}

// layoutToolbar stacks label buttons vertically down the left edge and packs
// swatches into rows. Groups are separated by a small gap.
func layoutToolbar(groups [][]Button, width int) {
	y := 4
	for _, g := range groups {
		x := 4
		for _, b := range g {
			if _, ok := unwrap(b).(*SwatchButton); ok {
				if x+swatchSize > width-2 {
					x = 4
					y += swatchSize + 2
				}
				b.SetRect(image.Rect(x, y, x+swatchSize, y+swatchSize))
				x += swatchSize + 2
				continue
			}
			b.SetRect(image.Rect(2, y, width-2, y+buttonHeight))
			y += buttonHeight + 1
		}
		if x > 4 {
			y += swatchSize + 2
		}
		y += 6
	}
}

func unwrap(b Button) Button {
	if cb, ok := b.(*CacheButton); ok {
		return cb.Button
	}
	return b
}

// buttonAt returns the index of the button containing p or -1.
func buttonAt(buttons []Button, p image.Point) int {
	for i, b := range buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

// sheetRect returns where the canvas sheet sits in a window of the given size
// next to a toolbar toolbarWidth pixels wide.
func sheetRect(width, height, toolbarWidth int) image.Rectangle {
	r := image.Rect(toolbarWidth+sheetMargin, sheetMargin, width-sheetMargin, height-statusHeight-sheetMargin)
	if r.Empty() {
		return image.Rect(toolbarWidth, 0, toolbarWidth, 0)
	}
	return r
}

// frame holds everything composeFrame needs. It is built on the event loop
// goroutine so the painter never touches the board.
type frame struct {
	width, height int
	toolbarWidth  int
	theme         *theme.Theme
	canvas        *image.RGBA
	sheet         image.Rectangle
	buttons       []Button
	states        []ButtonState
	status        string
	message       string
	messageUntil  time.Time
}

func composeFrame(dst *image.RGBA, f frame) {
	th := f.theme
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(th.Background), image.Point{}, draw.Src)

	opts := render.DefaultShadowOptions()
	opts.Opacity = float64(th.Shadow.A) / 255
	render.DrawShadow(dst, f.sheet, opts)
	if f.canvas != nil {
		draw.Draw(dst, f.sheet, f.canvas, f.canvas.Bounds().Min, draw.Src)
	}

	toolbar := image.Rect(0, 0, f.toolbarWidth, f.height-statusHeight)
	draw.Draw(dst, toolbar, image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	for i, btn := range f.buttons {
		btn.Draw(dst, f.states[i], th)
	}

	status := image.Rect(0, f.height-statusHeight, f.width, f.height)
	draw.Draw(dst, status, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: statusFace,
		Dot: fixed.P(6, f.height-statusHeight/2+statusFace.Metrics().Ascent.Ceil()/2-1)}
	d.DrawString(f.status)

	if f.message != "" && time.Now().Before(f.messageUntil) {
		drawMessage(dst, f.sheet, f.message, th)
	}
}

func drawMessage(dst *image.RGBA, area image.Rectangle, msg string, th *theme.Theme) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := area.Min.X + (area.Dx()-wmsg)/2
	py := area.Min.Y + (area.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	bg := th.ButtonBackground
	bg.A = 230
	draw.Draw(dst, rect, image.NewUniform(bg), image.Point{}, draw.Over)
	strokeRect(dst, rect, th.ButtonBorder, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
