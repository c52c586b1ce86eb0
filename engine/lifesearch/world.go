package lifesearch

import (
	"fmt"
	"log/slog"
	"strings"
)

// nbhdOffsets lists the neighbor directions in the order NW, W, SW, N, S,
// NE, E, SE. The order is antisymmetric: offset j is the negation of offset
// 7-j, so a cell is neighbor 7-j of its own neighbor j. Descriptor
// maintenance relies on this when it mirrors a state change into the
// neighbors' descriptors.
var nbhdOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1},
}

// cell is one cell of the space-time block. Back-references are indices
// into the world's flat cell slice; -1 means the target falls outside the
// stored block. The cell slice owns every cell, so the indices never dangle.
type cell struct {
	state State
	free  bool
	desc  Desc

	nbhd       [8]int
	pred, succ int
	sym        []int
}

// Config describes the world to build.
type Config struct {
	Width  int
	Height int
	Period int

	// Dx and Dy translate the pattern every period.
	Dx, Dy int

	Symmetry Symmetry
	Rule     *Rule

	// ColumnFirst overrides the automatic search order when non-nil.
	ColumnFirst *bool
}

// World is the cell graph of a W x H x P space-time block, surrounded by a
// one-ring border of background cells, plus one perpetually dead sentinel
// for successors that leave the block.
type World struct {
	Width  int
	Height int
	Period int
	Dx, Dy int

	Symmetry Symmetry

	rule        *Rule
	columnFirst bool
	cells       []cell
	sentinel    int
}

// NewWorld builds a fully wired cell graph for the given configuration.
func NewWorld(cfg Config) (*World, error) {
	if cfg.Rule == nil {
		return nil, ErrNoRule
	}
	if cfg.Width < 1 || cfg.Height < 1 || cfg.Period < 1 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrDimensions, cfg.Width, cfg.Height, cfg.Period)
	}
	if cfg.Symmetry.requiresSquare() && cfg.Width != cfg.Height {
		return nil, fmt.Errorf("%w: %s on %dx%d", ErrSymmetrySquare, cfg.Symmetry, cfg.Width, cfg.Height)
	}
	if !cfg.Symmetry.allowsTranslation(cfg.Dx, cfg.Dy) {
		return nil, fmt.Errorf("%w: %s with (%d, %d)", ErrSymmetryTranslation, cfg.Symmetry, cfg.Dx, cfg.Dy)
	}

	// The search guesses along the longer effective dimension first; all
	// generations of a spatial cell stay adjacent either way.
	columnFirst := false
	if cfg.ColumnFirst != nil {
		columnFirst = *cfg.ColumnFirst
	} else {
		ew, eh := cfg.Width, cfg.Height
		switch cfg.Symmetry {
		case SymD2Row:
			ew = (ew + 1) / 2
		case SymD2Col:
			eh = (eh + 1) / 2
		}
		if ew == eh {
			columnFirst = abs(cfg.Dx) >= abs(cfg.Dy)
		} else {
			columnFirst = ew > eh
		}
	}

	w := &World{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Period:      cfg.Period,
		Dx:          cfg.Dx,
		Dy:          cfg.Dy,
		Symmetry:    cfg.Symmetry,
		rule:        cfg.Rule,
		columnFirst: columnFirst,
	}

	n := (w.Width + 2) * (w.Height + 2) * w.Period
	w.cells = make([]cell, n+1)
	w.sentinel = n
	for i := range w.cells {
		c := &w.cells[i]
		c.pred, c.succ = -1, -1
		for j := range c.nbhd {
			c.nbhd[j] = -1
		}
	}
	w.cells[w.sentinel].state = Dead
	w.cells[w.sentinel].desc = NewDesc(Dead, Dead)

	// Background states and structural links. Neighbors missing from the
	// stored block keep contributing the background of their generation,
	// which the initial descriptor already accounts for.
	for x := -1; x <= w.Width; x++ {
		for y := -1; y <= w.Height; y++ {
			for t := 0; t < w.Period; t++ {
				i := w.index(x, y, t)
				c := &w.cells[i]
				c.state = w.defaultState(t)
				for j, off := range nbhdOffsets {
					c.nbhd[j] = w.index(x+off[0], y+off[1], t)
				}
				if t > 0 {
					c.pred = w.index(x, y, t-1)
				} else {
					c.pred = w.index(x-w.Dx, y-w.Dy, w.Period-1)
				}
				if t < w.Period-1 {
					c.succ = w.index(x, y, t+1)
				} else if s := w.index(x+w.Dx, y+w.Dy, 0); s >= 0 {
					c.succ = s
				} else {
					c.succ = w.sentinel
				}
				succState := Dead
				if c.succ != w.sentinel {
					succState = w.defaultState((t + 1) % w.Period)
				}
				c.desc = NewDesc(c.state, succState)
			}
		}
	}

	// Cells of the active region start unknown.
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			for t := 0; t < w.Period; t++ {
				w.setState(w.index(x, y, t), Unknown, false)
			}
		}
	}

	// A cell whose predecessor falls outside the block keeps the
	// background of its generation. Symmetry twins always land inside the
	// active region once the geometry checks above have passed.
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			twins := w.twinCoords(x, y)
			for t := 0; t < w.Period; t++ {
				i := w.index(x, y, t)
				if w.cells[i].pred < 0 {
					w.setState(i, w.defaultState(t), false)
				}
				for _, tc := range twins {
					w.cells[i].sym = append(w.cells[i].sym, w.index(tc[0], tc[1], t))
				}
			}
		}
	}

	slog.Debug("NewWorld",
		"width", w.Width, "height", w.Height, "period", w.Period,
		"dx", w.Dx, "dy", w.Dy, "symmetry", w.Symmetry.String(),
		"columnFirst", w.columnFirst, "cells", len(w.cells))
	return w, nil
}

// index returns the flat index of a coordinate, or -1 outside the stored
// block. The layout is the search order: the longer dimension outermost and
// the generation innermost.
func (w *World) index(x, y, t int) int {
	if x < -1 || x > w.Width || y < -1 || y > w.Height || t < 0 || t >= w.Period {
		return -1
	}
	if w.columnFirst {
		return ((x+1)*(w.Height+2)+y+1)*w.Period + t
	}
	return ((y+1)*(w.Width+2)+x+1)*w.Period + t
}

// defaultState is the background state of a generation: dead, except on the
// odd generations of a B0 rule.
func (w *World) defaultState(t int) State {
	if w.rule.b0 && t%2 == 1 {
		return Alive
	}
	return Dead
}

// twinCoords returns the spatial positions that the symmetry group pairs
// with (x, y).
func (w *World) twinCoords(x, y int) [][2]int {
	wd, ht := w.Width, w.Height
	switch w.Symmetry {
	case SymC2:
		return [][2]int{{wd - 1 - x, ht - 1 - y}}
	case SymC4:
		return [][2]int{{y, wd - 1 - x}, {wd - 1 - x, ht - 1 - y}, {ht - 1 - y, x}}
	case SymD2Row:
		return [][2]int{{wd - 1 - x, y}}
	case SymD2Col:
		return [][2]int{{x, ht - 1 - y}}
	case SymD2Diag:
		return [][2]int{{y, x}}
	case SymD2Anti:
		return [][2]int{{ht - 1 - y, wd - 1 - x}}
	case SymD4Ortho:
		return [][2]int{{wd - 1 - x, y}, {x, ht - 1 - y}, {wd - 1 - x, ht - 1 - y}}
	case SymD4Diag:
		return [][2]int{{y, x}, {ht - 1 - y, wd - 1 - x}, {wd - 1 - x, ht - 1 - y}}
	case SymD8:
		return [][2]int{
			{y, wd - 1 - x}, {ht - 1 - y, x},
			{wd - 1 - x, y}, {x, ht - 1 - y},
			{y, x}, {ht - 1 - y, wd - 1 - x},
			{wd - 1 - x, ht - 1 - y},
		}
	}
	return nil
}

// setState assigns a state and free flag to a cell, keeping every affected
// descriptor in sync. This is the only write path for cell states.
func (w *World) setState(i int, s State, free bool) {
	c := &w.cells[i]
	if c.state != s {
		w.updateDesc(i, c.state, s)
		c.state = s
	}
	c.free = free
}

// updateDesc mirrors a state change of cell i into the descriptors of its
// eight neighbors, its predecessor, and itself.
//
// The neighbor delta packs the two panes: 0x0101 for a full dead/alive
// flip, 0x0100 when only the dead bit changes, 0x0001 when only the alive
// bit changes. Neighbor j sees this cell at its own position 7-j, hence the
// shift. The self delta is simply the XOR of the two 2-bit states.
func (w *World) updateDesc(i int, oldState, newState State) {
	var delta Desc
	if (oldState == Alive) != (newState == Alive) {
		delta |= 0x0001
	}
	if (oldState == Dead) != (newState == Dead) {
		delta |= 0x0100
	}
	c := &w.cells[i]
	for j, nb := range c.nbhd {
		if nb >= 0 {
			w.cells[nb].desc ^= delta << (7 - j) << 4
		}
	}

	change := Desc(oldState ^ newState)
	if c.pred >= 0 {
		w.cells[c.pred].desc ^= change << 2
	}
	c.desc ^= change
}

// getUnknown returns the first unknown cell in search order, or -1.
func (w *World) getUnknown() int {
	for i := range w.cells[:w.sentinel] {
		if w.cells[i].state == Unknown {
			return i
		}
	}
	return -1
}

// nontrivial reports whether the current (fully determined) block holds a
// pattern that is not entirely dead and whose minimal period equals the
// world's period. The generation of a cell is its flat index modulo the
// period, so generation pairs are compared chunk by chunk.
func (w *World) nontrivial() bool {
	p := w.Period
	nonzero := false
	for i := 0; i < w.sentinel; i += p {
		if w.cells[i].state != Dead {
			nonzero = true
			break
		}
	}
	if !nonzero {
		return false
	}
	for t := 1; t < p; t++ {
		if p%t != 0 {
			continue
		}
		same := true
		for base := 0; base < w.sentinel; base += p {
			if w.cells[base].state != w.cells[base+t].state {
				same = false
				break
			}
		}
		if same {
			return false
		}
	}
	return true
}

// CellState returns the state of the cell at a coordinate.
func (w *World) CellState(c Coord) (State, error) {
	i := w.index(c.X, c.Y, c.T)
	if i < 0 {
		return Unknown, fmt.Errorf("%w at (%d, %d, %d)", ErrGetCell, c.X, c.Y, c.T)
	}
	return w.cells[i].state, nil
}

// SetCell assigns a definite state to an active cell before the search
// starts, e.g. to seed part of a pattern. Border and sentinel cells, and
// cells already fixed to the other state, cannot be assigned.
func (w *World) SetCell(c Coord, s State) error {
	i := w.index(c.X, c.Y, c.T)
	if i < 0 {
		return fmt.Errorf("%w at (%d, %d, %d)", ErrGetCell, c.X, c.Y, c.T)
	}
	inner := c.X >= 0 && c.X < w.Width && c.Y >= 0 && c.Y < w.Height
	if s == Unknown || !inner || (w.cells[i].state != Unknown && w.cells[i].state != s) {
		return fmt.Errorf("%w at (%d, %d, %d)", ErrSetCell, c.X, c.Y, c.T)
	}
	w.setState(i, s, false)
	return nil
}

// GenString renders one generation of the world as text, one row per line:
// 'O' for alive, '.' for dead, '?' for unknown.
func (w *World) GenString(t int) string {
	t = (t%w.Period + w.Period) % w.Period
	var b strings.Builder
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			b.WriteRune(w.cells[w.index(x, y, t)].state.Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
