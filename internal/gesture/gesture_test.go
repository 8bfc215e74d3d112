package gesture

import (
	"image/color"
	"testing"

	"github.com/example/paintbrush/internal/history"
	"github.com/example/paintbrush/internal/shape"
	"github.com/example/paintbrush/internal/style"
)

func newMachine(mode style.Mode) (*Machine, *style.State, *history.History) {
	st := style.NewState()
	st.SetMode(mode)
	h := history.New()
	return New(st, h), st, h
}

func endpoints(t *testing.T, s shape.Shape) (shape.Point, shape.Point) {
	t.Helper()
	if s.Kind() != shape.KindSegment {
		t.Fatalf("expected segment, got %v", s.Kind())
	}
	return s.Endpoints()
}

func TestPencilCommitsIncrementally(t *testing.T) {
	m, _, h := newMachine(style.ModePencil)
	if m.PointerDown(shape.Pt(0, 0)) {
		t.Fatal("pencil press should not change history")
	}
	if !m.PointerMove(shape.Pt(1, 1)) {
		t.Fatal("pencil move should change history")
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 segment after first move, got %d", h.Len())
	}
	m.PointerMove(shape.Pt(2, 0))
	if m.PointerUp(shape.Pt(2, 0)) {
		t.Fatal("pencil release should not commit")
	}
	got := h.Shapes()
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}
	a, b := endpoints(t, got[0])
	if a != shape.Pt(0, 0) || b != shape.Pt(1, 1) {
		t.Errorf("first segment %v-%v", a, b)
	}
	a, b = endpoints(t, got[1])
	if a != shape.Pt(1, 1) || b != shape.Pt(2, 0) {
		t.Errorf("second segment %v-%v", a, b)
	}
	if m.State() != Idle {
		t.Fatalf("state = %v after release", m.State())
	}
}

func TestPencilStyleChangeMidDrag(t *testing.T) {
	m, st, h := newMachine(style.ModePencil)
	m.PointerDown(shape.Pt(0, 0))
	m.PointerMove(shape.Pt(5, 5))
	st.SetColor(color.RGBA{R: 255})
	m.PointerMove(shape.Pt(10, 10))
	got := h.Shapes()
	if got[0].Color() != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("first segment color changed to %+v", got[0].Color())
	}
	if got[1].Color() != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("second segment color %+v, want red", got[1].Color())
	}
}

func TestRectangleFromBottomRight(t *testing.T) {
	m, _, h := newMachine(style.ModeRectangle)
	m.PointerDown(shape.Pt(10, 10))
	if !m.PointerUp(shape.Pt(0, 0)) {
		t.Fatal("rectangle release should commit")
	}
	got := h.Shapes()
	if len(got) != 1 || got[0].Kind() != shape.KindRectangle {
		t.Fatalf("unexpected history %v", got)
	}
	x, y, w, hh := got[0].Rect()
	if x != 10 || y != 10 || w != -10 || hh != -10 {
		t.Fatalf("rect = %g %g %g %g", x, y, w, hh)
	}
	if b := got[0].Bounds(); b != (shape.Box{X: 0, Y: 0, W: 10, H: 10}) {
		t.Fatalf("bounds = %+v", b)
	}
	if !got[0].HitTest(0, 0) || !got[0].HitTest(10, 10) || got[0].HitTest(11, 5) {
		t.Fatal("normalised hit area mismatch")
	}
}

func TestLineAndOvalCommitOnRelease(t *testing.T) {
	tests := []struct {
		mode style.Mode
		kind shape.Kind
	}{
		{style.ModeLine, shape.KindSegment},
		{style.ModeOval, shape.KindOval},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			m, _, h := newMachine(tt.mode)
			m.PointerDown(shape.Pt(1, 2))
			for i := 0; i < 5; i++ {
				if m.PointerMove(shape.Pt(float64(i), 7)) {
					t.Fatal("drag should not commit")
				}
			}
			if h.Len() != 0 {
				t.Fatal("shape committed during drag")
			}
			m.PointerUp(shape.Pt(9, 8))
			got := h.Shapes()
			if len(got) != 1 || got[0].Kind() != tt.kind {
				t.Fatalf("unexpected history %v", got)
			}
			x, y, w, hh := got[0].Rect()
			if x != 1 || y != 2 || w != 8 || hh != 6 {
				t.Fatalf("geometry %g %g %g %g", x, y, w, hh)
			}
		})
	}
}

func TestEraserErasesOnPressAndDrag(t *testing.T) {
	m, _, h := newMachine(style.ModeEraser)
	h.Append(shape.NewRectangle(0, 0, 10, 10, shape.DefaultStyle()))
	h.Append(shape.NewOval(0, 0, 10, 10, shape.DefaultStyle()))
	h.Append(shape.NewSegment(shape.Pt(100, 0), shape.Pt(100, 50), shape.DefaultStyle()))
	h.Append(shape.NewSegment(shape.Pt(200, 0), shape.Pt(200, 50), shape.DefaultStyle()))
	if !m.PointerDown(shape.Pt(5, 5)) {
		t.Fatal("press should erase")
	}
	if h.Len() != 2 {
		t.Fatalf("expected 2 shapes after press, got %d", h.Len())
	}
	if m.PointerMove(shape.Pt(50, 20)) {
		t.Fatal("move over empty space should not change history")
	}
	if !m.PointerMove(shape.Pt(101, 20)) {
		t.Fatal("move over segment should erase")
	}
	// Sparse samples jump over the segment at x=200.
	m.PointerMove(shape.Pt(150, 20))
	m.PointerMove(shape.Pt(250, 20))
	if m.PointerUp(shape.Pt(250, 20)) {
		t.Fatal("eraser release should not change history")
	}
	if h.Len() != 1 {
		t.Fatalf("expected the skipped segment to survive, got %d shapes", h.Len())
	}
}

func TestEventsWhileIdleAreIgnored(t *testing.T) {
	m, _, h := newMachine(style.ModePencil)
	if m.PointerMove(shape.Pt(1, 1)) || m.PointerUp(shape.Pt(2, 2)) {
		t.Fatal("idle events reported a change")
	}
	if h.Len() != 0 || m.State() != Idle {
		t.Fatal("idle events mutated state")
	}
}

func TestPressWhileDraggingRestartsAnchor(t *testing.T) {
	m, _, h := newMachine(style.ModeLine)
	m.PointerDown(shape.Pt(0, 0))
	m.PointerDown(shape.Pt(5, 5))
	m.PointerUp(shape.Pt(10, 5))
	got := h.Shapes()
	if len(got) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(got))
	}
	a, b := endpoints(t, got[0])
	if a != shape.Pt(5, 5) || b != shape.Pt(10, 5) {
		t.Fatalf("segment %v-%v", a, b)
	}
}

func TestModeReadAtEachEvent(t *testing.T) {
	m, st, h := newMachine(style.ModeLine)
	m.PointerDown(shape.Pt(0, 0))
	st.SetMode(style.ModeRectangle)
	m.PointerUp(shape.Pt(4, 4))
	if got := h.Shapes(); len(got) != 1 || got[0].Kind() != shape.KindRectangle {
		t.Fatalf("unexpected history %v", got)
	}
}

func TestPreview(t *testing.T) {
	m, _, h := newMachine(style.ModeOval)
	if _, ok := m.Preview(); ok {
		t.Fatal("preview while idle")
	}
	m.PointerDown(shape.Pt(2, 2))
	m.PointerMove(shape.Pt(12, 6))
	p, ok := m.Preview()
	if !ok || p.Kind() != shape.KindOval {
		t.Fatalf("preview = %v, %v", p, ok)
	}
	if x, y, w, hh := p.Rect(); x != 2 || y != 2 || w != 10 || hh != 4 {
		t.Fatalf("preview geometry %g %g %g %g", x, y, w, hh)
	}
	if h.Len() != 0 {
		t.Fatal("preview committed a shape")
	}
	if p.ID() != "" {
		t.Fatalf("preview carries id %q", p.ID())
	}
	if again, _ := m.Preview(); again != p {
		t.Fatal("preview changed without pointer movement")
	}
	m.Cancel()
	if _, ok := m.Preview(); ok || m.State() != Idle {
		t.Fatal("cancel did not reset gesture")
	}
	if m.PointerUp(shape.Pt(1, 1)) {
		t.Fatal("release after cancel committed")
	}
}

func TestCommittedShapeGetsID(t *testing.T) {
	m, _, h := newMachine(style.ModeRectangle)
	m.PointerDown(shape.Pt(0, 0))
	m.PointerMove(shape.Pt(5, 5))
	p, _ := m.Preview()
	m.PointerUp(shape.Pt(5, 5))
	got := h.Shapes()
	if len(got) != 1 || got[0].ID() == "" {
		t.Fatalf("committed %v", got)
	}
	if got[0].Kind() != p.Kind() || got[0].Bounds() != p.Bounds() {
		t.Fatalf("committed %v, previewed %v", got[0], p)
	}
}

func TestPreviewNoneForPencil(t *testing.T) {
	m, _, _ := newMachine(style.ModePencil)
	m.PointerDown(shape.Pt(0, 0))
	if _, ok := m.Preview(); ok {
		t.Fatal("pencil has no preview")
	}
}
