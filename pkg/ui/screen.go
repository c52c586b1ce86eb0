package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	defaultZeroValue = ' '

	screenStyle = lipgloss.NewStyle().Padding(1, 1, 1, 1)
)

// Screen represents a terminal screen buffer with styling capabilities
type Screen struct {
	rows int
	cols int

	zeroValue   rune
	screenStyle lipgloss.Style
	charStyles  map[rune]lipgloss.Style

	data    [][]rune
	buf     strings.Builder
	lineBuf strings.Builder
}

// NewScreen creates a new screen with the specified dimensions
func NewScreen(rows, cols int) *Screen {
	gs := &Screen{
		rows:        rows,
		cols:        cols,
		zeroValue:   defaultZeroValue,
		screenStyle: screenStyle,
		charStyles:  make(map[rune]lipgloss.Style),
	}
	gs.Reset()

	return gs
}

// SetZeroValue sets the default character used for empty cells
func (gs *Screen) SetZeroValue(zeroValue rune) {
	gs.zeroValue = zeroValue
}

// SetCharColor sets a specific color for a character when rendered
func (gs *Screen) SetCharColor(char rune, color lipgloss.Color) {
	if color == "" || char == 0 {
		return
	}
	gs.charStyles[char] = lipgloss.NewStyle().Foreground(color)
}

// Reset resets the entire screen to the zero value
func (gs *Screen) Reset() {
	if gs.data == nil {
		gs.data = make([][]rune, gs.rows)
	}
	for i := range gs.rows {
		if gs.data[i] == nil {
			gs.data[i] = make([]rune, gs.cols)
		}
		for j := range gs.cols {
			gs.data[i][j] = gs.zeroValue
		}
	}
}

// SetData sets the screen data from a 2D rune array
func (gs *Screen) SetData(data [][]rune) {
	rows := min(len(data), gs.rows)
	for i := range rows {
		cols := min(len(data[i]), gs.cols)
		copy(gs.data[i][:cols], data[i][:cols])
		for j := cols; j < gs.cols; j++ {
			gs.data[i][j] = gs.zeroValue
		}
	}
	for i := rows; i < gs.rows; i++ {
		for j := range gs.cols {
			gs.data[i][j] = gs.zeroValue
		}
	}
}

// View renders the screen content as a styled string
func (gs *Screen) View() string {
	gs.buf.Reset()
	for i := range gs.rows {
		gs.lineBuf.Reset()
		for j := range gs.cols {
			style, ok := gs.charStyles[gs.data[i][j]]
			if ok {
				gs.lineBuf.WriteString(style.Render(string(gs.data[i][j])))
			} else {
				gs.lineBuf.WriteRune(gs.data[i][j])
			}
		}
		gs.buf.WriteString(gs.lineBuf.String())
		if i < gs.rows-1 {
			gs.buf.WriteRune('\n')
		}
	}
	return gs.screenStyle.Render(gs.buf.String())
}
