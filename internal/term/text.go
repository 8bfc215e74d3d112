package term

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawString draws s on row y starting at column x, truncating with an
// ellipsis at maxW columns. It returns the number of columns used.
func drawString(s tcell.Screen, x, y, maxW int, str string, style tcell.Style) int {
	used := 0
	for r, rl := utf8.DecodeRuneInString(str); len(str) > 0; r, rl = utf8.DecodeRuneInString(str) {
		w := runewidth.RuneWidth(r)
		if maxW >= 0 && used+w >= maxW && !(used+w == maxW && len(str) == rl) {
			for ; used < maxW; used++ {
				s.SetContent(x+used, y, '…', nil, style)
			}
			return used
		}
		s.SetContent(x+used, y, r, nil, style)
		used += w
		str = str[rl:]
	}
	return used
}

// fillRow blanks row y from column x for w columns.
func fillRow(s tcell.Screen, x, y, w int, style tcell.Style) {
	for i := 0; i < w; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}
