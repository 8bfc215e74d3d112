//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the drawing is offered over the X11 protocol directly. A hidden
// window owns CLIPBOARD and answers image/png requests until another client
// takes the selection.
var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		owner, initErr = newSelectionOwner()
	})
	return initErr
}

// WriteImage encodes img as PNG and takes ownership of the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return owner.offer(data)
}

type selectionOwner struct {
	conn *xgb.Conn
	win  xproto.Window

	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom

	mu   sync.Mutex
	data []byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	o := &selectionOwner{conn: conn}
	if err := o.setup(); err != nil {
		conn.Close()
		return nil, err
	}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) setup() error {
	screen := xproto.Setup(o.conn).DefaultScreen(o.conn)
	win, err := xproto.NewWindowId(o.conn)
	if err != nil {
		return fmt.Errorf("allocate selection window: %w", err)
	}
	err = xproto.CreateWindowChecked(o.conn, screen.RootDepth, win, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual, 0, nil).Check()
	if err != nil {
		return fmt.Errorf("create selection window: %w", err)
	}
	o.win = win
	for name, dst := range map[string]*xproto.Atom{
		"CLIPBOARD": &o.clipboard,
		"TARGETS":   &o.targets,
		"image/png": &o.png,
	} {
		reply, err := xproto.InternAtom(o.conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return fmt.Errorf("intern %s: %w", name, err)
		}
		*dst = reply.Atom
	}
	return nil
}

func (o *selectionOwner) offer(data []byte) error {
	o.mu.Lock()
	o.data = data
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.win, o.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		if err != nil {
			log.Printf("clipboard: %v", err)
			continue
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.data = nil
			o.mu.Unlock()
		}
	}
}

// answer stores the requested target on the requestor's property and tells
// it so. Unknown targets are refused with a None property.
// TODO: PNGs larger than the server's maximum request size need an INCR transfer.
func (o *selectionOwner) answer(req xproto.SelectionRequestEvent) {
	prop := req.Property
	if prop == xproto.AtomNone {
		prop = req.Target
	}
	o.mu.Lock()
	data := o.data
	o.mu.Unlock()

	switch {
	case req.Target == o.targets:
		list := make([]byte, 8)
		xgb.Put32(list, uint32(o.targets))
		xgb.Put32(list[4:], uint32(o.png))
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, req.Requestor, prop, xproto.AtomAtom, 32, 2, list)
	case req.Target == o.png && data != nil:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, req.Requestor, prop, o.png, 8, uint32(len(data)), data)
	default:
		prop = xproto.AtomNone
	}

	reply := xproto.SelectionNotifyEvent{
		Time:      req.Time,
		Requestor: req.Requestor,
		Selection: req.Selection,
		Target:    req.Target,
		Property:  prop,
	}
	xproto.SendEvent(o.conn, false, req.Requestor, xproto.EventMaskNoEvent, string(reply.Bytes()))
}
