package lifesearch

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/telepair/lifesearch/pkg/ui"
)

var _ ui.StepEngine = (*Viewer)(nil)

var (
	// ViewerHeader is the header text for the pattern playback
	ViewerHeader = "🔍 Lifesearch Pattern Playback 🔍"

	// DefaultAliveColor is the default alive cell color
	DefaultAliveColor = lipgloss.Color("#00FF00")
	// DefaultAliveChar is the default alive cell character
	DefaultAliveChar = '█'
	// DefaultDeadChar is the default dead cell character
	DefaultDeadChar = ' '
)

// Viewer steps cyclically through the generations of a solved world so a
// found pattern can be watched in the terminal.
type Viewer struct {
	world    *World
	ruleName string
	screen   *ui.Screen
	gen      int
	buf      [][]rune
	stopped  bool
}

// NewViewer creates a playback engine over a solved world.
func NewViewer(world *World, ruleName string) *Viewer {
	v := &Viewer{
		world:    world,
		ruleName: ruleName,
		screen:   ui.NewScreen(world.Height, world.Width),
	}
	v.screen.SetZeroValue(DefaultDeadChar)
	v.screen.SetCharColor(DefaultAliveChar, DefaultAliveColor)
	v.buf = make([][]rune, world.Height)
	for y := range v.buf {
		v.buf[y] = make([]rune, world.Width)
	}
	v.render()
	return v
}

// View returns the view of the current generation
func (v *Viewer) View() string {
	return v.screen.View()
}

// Step advances the playback by one generation
func (v *Viewer) Step() (int, bool) {
	if v.stopped {
		return v.gen, false
	}
	v.gen++
	v.render()
	return v.gen, true
}

// Header returns the header text for the UI
func (v *Viewer) Header() string {
	return ViewerHeader
}

// Status returns the status text for the UI
func (v *Viewer) Status() []ui.Status {
	return []ui.Status{
		{Label: "Rule", Value: v.ruleName},
		{Label: "Gen", Value: strconv.Itoa(v.gen % v.world.Period)},
		{Label: "Period", Value: strconv.Itoa(v.world.Period)},
		{Label: "Size", Value: fmt.Sprintf("%d×%d", v.world.Width, v.world.Height)},
	}
}

// HandleKeys returns the available keyboard controls
func (v *Viewer) HandleKeys() []ui.Control {
	return nil
}

// Handle handles keyboard input operations
func (v *Viewer) Handle(_ string) (bool, error) {
	return false, nil
}

// IsFinished returns whether the playback has finished; it loops forever.
func (v *Viewer) IsFinished() bool {
	return false
}

// Stop stops the playback
func (v *Viewer) Stop() {
	v.stopped = true
}

// render draws one generation into the screen buffer
func (v *Viewer) render() {
	t := v.gen % v.world.Period
	for y := 0; y < v.world.Height; y++ {
		for x := 0; x < v.world.Width; x++ {
			ch := DefaultDeadChar
			if state, err := v.world.CellState(Coord{X: x, Y: y, T: t}); err == nil && state == Alive {
				ch = DefaultAliveChar
			}
			v.buf[y][x] = ch
		}
	}
	v.screen.SetData(v.buf)
}
