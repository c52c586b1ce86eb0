package lifesearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustWorld builds a world for tests
func mustWorld(t *testing.T, rule string, cfg Config) *World {
	t.Helper()
	cfg.Rule = lifeRule(t, rule)
	world, err := NewWorld(cfg)
	require.NoError(t, err)
	return world
}

// recomputeDesc derives a cell's descriptor from scratch out of the
// current states, the way the incremental XOR updates are supposed to
// maintain it.
func recomputeDesc(w *World, x, y, t int) Desc {
	c := w.cells[w.index(x, y, t)]

	var d Desc
	d |= Desc(c.state)
	succState := Dead
	if c.succ != w.sentinel {
		succState = w.cells[c.succ].state
	}
	d |= Desc(succState) << 2

	for j, off := range nbhdOffsets {
		ni := w.index(x+off[0], y+off[1], t)
		ns := w.defaultState(t)
		if ni >= 0 {
			ns = w.cells[ni].state
		}
		switch ns {
		case Alive:
			d |= 1 << (4 + j)
		case Dead:
			d |= 1 << (12 + j)
		}
	}
	return d
}

// assertDescriptors checks the descriptor invariant over the whole block
func assertDescriptors(t *testing.T, w *World) {
	t.Helper()
	for x := -1; x <= w.Width; x++ {
		for y := -1; y <= w.Height; y++ {
			for gen := 0; gen < w.Period; gen++ {
				i := w.index(x, y, gen)
				assert.Equal(t, recomputeDesc(w, x, y, gen), w.cells[i].desc,
					"descriptor of (%d, %d, %d)", x, y, gen)
			}
		}
	}
}

// TestNewWorldGeometry tests allocation, linking and initial states
func TestNewWorldGeometry(t *testing.T) {
	w := mustWorld(t, "B3/S23", Config{Width: 3, Height: 4, Period: 2})

	assert.Len(t, w.cells, 5*6*2+1)

	// Interior cells start unknown; the border keeps the background.
	for x := -1; x <= w.Width; x++ {
		for y := -1; y <= w.Height; y++ {
			for gen := 0; gen < w.Period; gen++ {
				c := w.cells[w.index(x, y, gen)]
				inner := x >= 0 && x < w.Width && y >= 0 && y < w.Height
				if inner {
					assert.Equal(t, Unknown, c.state)
				} else {
					assert.Equal(t, Dead, c.state)
				}
				assert.False(t, c.free)
			}
		}
	}

	// Generations link forward and wrap around.
	assert.Equal(t, w.index(1, 1, 1), w.cells[w.index(1, 1, 0)].succ)
	assert.Equal(t, w.index(1, 1, 0), w.cells[w.index(1, 1, 1)].succ)
	assert.Equal(t, w.index(1, 1, 0), w.cells[w.index(1, 1, 1)].pred)

	// Neighbor links are mutual at mirrored positions.
	for j, nb := range w.cells[w.index(1, 1, 0)].nbhd {
		require.GreaterOrEqual(t, nb, 0)
		assert.Equal(t, w.index(1, 1, 0), w.cells[nb].nbhd[7-j])
	}

	assertDescriptors(t, w)
}

// TestNewWorldTranslation tests the temporal seam under a translation
func TestNewWorldTranslation(t *testing.T) {
	w := mustWorld(t, "B3/S23", Config{Width: 4, Height: 4, Period: 2, Dx: 1, Dy: 1})

	// The successor of the last generation is displaced by (dx, dy).
	assert.Equal(t, w.index(2, 2, 0), w.cells[w.index(1, 1, 1)].succ)
	// Falling off the block lands on the sentinel.
	assert.Equal(t, w.sentinel, w.cells[w.index(4, 4, 1)].succ)
	// The predecessor of generation zero is displaced backwards.
	assert.Equal(t, w.index(1, 1, 1), w.cells[w.index(2, 2, 0)].pred)

	assertDescriptors(t, w)
}

// TestNewWorldSymmetryTwins tests the twin lists of a few groups
func TestNewWorldSymmetryTwins(t *testing.T) {
	w := mustWorld(t, "B3/S23", Config{Width: 4, Height: 4, Period: 1, Symmetry: SymC2})
	assert.Equal(t, []int{w.index(3, 3, 0)}, w.cells[w.index(0, 0, 0)].sym)

	w = mustWorld(t, "B3/S23", Config{Width: 5, Height: 5, Period: 1, Symmetry: SymD8})
	twins := w.cells[w.index(1, 0, 0)].sym
	assert.Len(t, twins, 7)
	assert.Contains(t, twins, w.index(0, 1, 0))
	assert.Contains(t, twins, w.index(3, 0, 0))
	assert.Contains(t, twins, w.index(3, 4, 0))

	// The center of an odd square is its own orbit.
	for _, twin := range w.cells[w.index(2, 2, 0)].sym {
		assert.Equal(t, w.index(2, 2, 0), twin)
	}
}

// TestNewWorldRejects tests the geometry validation
func TestNewWorldRejects(t *testing.T) {
	rule := lifeRule(t, "B3/S23")

	_, err := NewWorld(Config{Width: 0, Height: 5, Period: 1, Rule: rule})
	assert.ErrorIs(t, err, ErrDimensions)

	_, err = NewWorld(Config{Width: 5, Height: 4, Period: 1, Symmetry: SymD8, Rule: rule})
	assert.ErrorIs(t, err, ErrSymmetrySquare)

	_, err = NewWorld(Config{Width: 5, Height: 5, Period: 2, Dx: 1, Symmetry: SymC2, Rule: rule})
	assert.ErrorIs(t, err, ErrSymmetryTranslation)

	_, err = NewWorld(Config{Width: 5, Height: 5, Period: 2, Dx: 1, Symmetry: SymD2Row, Rule: rule})
	assert.ErrorIs(t, err, ErrSymmetryTranslation)

	// A vertical translation is fine with a vertical mirror.
	_, err = NewWorld(Config{Width: 5, Height: 4, Period: 4, Dy: 1, Symmetry: SymD2Row, Rule: rule})
	assert.NoError(t, err)

	_, err = NewWorld(Config{Width: 5, Height: 5, Period: 1})
	assert.Error(t, err)
}

// TestSearchOrder tests the automatic row/column-major decision
func TestSearchOrder(t *testing.T) {
	w := mustWorld(t, "B3/S23", Config{Width: 5, Height: 3, Period: 1})
	assert.True(t, w.columnFirst)

	w = mustWorld(t, "B3/S23", Config{Width: 3, Height: 5, Period: 1})
	assert.False(t, w.columnFirst)

	// A vertical mirror halves the effective width.
	w = mustWorld(t, "B3/S23", Config{Width: 5, Height: 4, Period: 1, Symmetry: SymD2Row})
	assert.False(t, w.columnFirst)

	// On a square, the translation orientation decides.
	w = mustWorld(t, "B3/S23", Config{Width: 4, Height: 4, Period: 2, Dx: 1})
	assert.True(t, w.columnFirst)
	w = mustWorld(t, "B3/S23", Config{Width: 4, Height: 4, Period: 2, Dy: 1})
	assert.False(t, w.columnFirst)

	// An explicit override wins.
	cf := true
	w = mustWorld(t, "B3/S23", Config{Width: 3, Height: 5, Period: 1, ColumnFirst: &cf})
	assert.True(t, w.columnFirst)

	// All generations of a spatial cell are adjacent either way.
	w = mustWorld(t, "B3/S23", Config{Width: 3, Height: 5, Period: 3})
	assert.Equal(t, w.index(1, 1, 0)+1, w.index(1, 1, 1))
	assert.Equal(t, w.index(1, 1, 1)+1, w.index(1, 1, 2))
}

// TestB0Background tests the alternating background of B0 rules
func TestB0Background(t *testing.T) {
	w := mustWorld(t, "B0/S8", Config{Width: 3, Height: 3, Period: 2})

	state, err := w.CellState(Coord{X: -1, Y: 0, T: 0})
	require.NoError(t, err)
	assert.Equal(t, Dead, state)

	state, err = w.CellState(Coord{X: -1, Y: 0, T: 1})
	require.NoError(t, err)
	assert.Equal(t, Alive, state)

	assertDescriptors(t, w)
}

// TestCellStateErrors tests coordinate validation on reads
func TestCellStateErrors(t *testing.T) {
	w := mustWorld(t, "B3/S23", Config{Width: 3, Height: 3, Period: 1})

	_, err := w.CellState(Coord{X: -2, Y: 0, T: 0})
	assert.ErrorIs(t, err, ErrGetCell)
	_, err = w.CellState(Coord{X: 0, Y: 0, T: 1})
	assert.ErrorIs(t, err, ErrGetCell)

	state, err := w.CellState(Coord{X: 0, Y: 0, T: 0})
	require.NoError(t, err)
	assert.Equal(t, Unknown, state)
}

// TestSetCell tests seeding and its error surface
func TestSetCell(t *testing.T) {
	w := mustWorld(t, "B3/S23", Config{Width: 3, Height: 3, Period: 1})

	require.NoError(t, w.SetCell(Coord{X: 1, Y: 1, T: 0}, Alive))
	state, err := w.CellState(Coord{X: 1, Y: 1, T: 0})
	require.NoError(t, err)
	assert.Equal(t, Alive, state)

	// Setting the same state again is fine; the opposite is not.
	assert.NoError(t, w.SetCell(Coord{X: 1, Y: 1, T: 0}, Alive))
	assert.ErrorIs(t, w.SetCell(Coord{X: 1, Y: 1, T: 0}, Dead), ErrSetCell)

	// Border cells and unknown assignments are rejected.
	assert.ErrorIs(t, w.SetCell(Coord{X: -1, Y: 0, T: 0}, Alive), ErrSetCell)
	assert.ErrorIs(t, w.SetCell(Coord{X: 0, Y: 0, T: 0}, Unknown), ErrSetCell)
	assert.ErrorIs(t, w.SetCell(Coord{X: 9, Y: 0, T: 0}, Alive), ErrGetCell)

	assertDescriptors(t, w)
}

// TestDescriptorMaintenance tests the XOR updates against recomputation
// through a series of state changes.
func TestDescriptorMaintenance(t *testing.T) {
	w := mustWorld(t, "B3/S23", Config{Width: 4, Height: 3, Period: 2, Dy: 1})

	steps := []struct {
		x, y, t int
		s       State
	}{
		{1, 1, 0, Alive},
		{2, 1, 0, Dead},
		{1, 1, 1, Alive},
		{1, 1, 0, Unknown},
		{1, 1, 0, Dead},
		{2, 1, 0, Unknown},
	}
	for _, step := range steps {
		w.setState(w.index(step.x, step.y, step.t), step.s, false)
		assertDescriptors(t, w)
	}
}

// TestGenString tests the text rendering of a generation
func TestGenString(t *testing.T) {
	w := mustWorld(t, "B3/S23", Config{Width: 3, Height: 2, Period: 1})
	require.NoError(t, w.SetCell(Coord{X: 0, Y: 0, T: 0}, Alive))
	require.NoError(t, w.SetCell(Coord{X: 1, Y: 0, T: 0}, Dead))

	assert.Equal(t, "O.?\n???\n", w.GenString(0))
}
