package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/paintbrush/internal/suggest"
)

// ErrUnknownMode is returned when a mode token is not recognised.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the drawing mode that decides how a pointer gesture is interpreted.
type Mode int

const (
	ModeLine Mode = iota
	ModeRectangle
	ModeOval
	ModePencil
	ModeEraser
)

var modeNames = [...]string{
	ModeLine:      "Line",
	ModeRectangle: "Rectangle",
	ModeOval:      "Oval",
	ModePencil:    "Pencil",
	ModeEraser:    "Eraser",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(modeNames)
}

// Modes returns all modes in toolbar order.
func Modes() []Mode {
	out := make([]Mode, len(modeNames))
	for i := range modeNames {
		out[i] = Mode(i)
	}
	return out
}

// ModeNames returns the display names of all modes.
func ModeNames() []string {
	return append([]string(nil), modeNames[:]...)
}

// ParseMode converts a case-insensitive token such as "rect" or "Oval" into a
// Mode. "rect" and "ellipse" are accepted as aliases.
func ParseMode(token string) (Mode, error) {
	t := strings.TrimSpace(token)
	for i, name := range modeNames {
		if strings.EqualFold(name, t) {
			return Mode(i), nil
		}
	}
	switch strings.ToLower(t) {
	case "rect":
		return ModeRectangle, nil
	case "ellipse":
		return ModeOval, nil
	case "pen", "freehand":
		return ModePencil, nil
	}
	return 0, fmt.Errorf("%w %q%s", ErrUnknownMode, token, suggest.Hint(t, modeNames[:]))
}
