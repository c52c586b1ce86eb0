// Package lifesearch implements a constraint-propagation backtracking
// searcher for periodic patterns (still lifes, oscillators, spaceships) in
// two-dimensional life-like cellular automata, including isotropic
// non-totalistic rules.
package lifesearch

import "fmt"

// State is the ternary state of a cell. The bit patterns matter: the
// neighborhood descriptor XORs them directly into its panes, and a full
// Dead/Alive flip toggles both bits at once.
type State uint8

// Cell states
const (
	Unknown State = 0b00
	Alive   State = 0b01
	Dead    State = 0b10
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	}
	return "unknown"
}

// Rune returns the display character of the state
func (s State) Rune() rune {
	switch s {
	case Alive:
		return 'O'
	case Dead:
		return '.'
	}
	return '?'
}

// Coord addresses a cell by position and generation.
type Coord struct {
	X, Y, T int
}

// Symmetry is a symmetry group of the square that the pattern must be
// invariant under.
type Symmetry int

// Symmetry groups
const (
	SymC1      Symmetry = iota // no symmetry
	SymC2                      // 180-degree rotation
	SymC4                      // 90-degree rotation
	SymD2Row                   // D2| : reflection across the vertical axis
	SymD2Col                   // D2- : reflection across the horizontal axis
	SymD2Diag                  // D2\ : reflection across the main diagonal
	SymD2Anti                  // D2/ : reflection across the antidiagonal
	SymD4Ortho                 // D4+ : both axis reflections
	SymD4Diag                  // D4X : both diagonal reflections
	SymD8                      // all eight symmetries of the square
)

// ParseSymmetry converts a string to a symmetry group.
func ParseSymmetry(s string) (Symmetry, error) {
	switch s {
	case "C1", "":
		return SymC1, nil
	case "C2":
		return SymC2, nil
	case "C4":
		return SymC4, nil
	case "D2|":
		return SymD2Row, nil
	case "D2-":
		return SymD2Col, nil
	case `D2\`:
		return SymD2Diag, nil
	case "D2/":
		return SymD2Anti, nil
	case "D4+":
		return SymD4Ortho, nil
	case "D4X":
		return SymD4Diag, nil
	case "D8":
		return SymD8, nil
	}
	return SymC1, fmt.Errorf("%w: %q", ErrSymmetry, s)
}

// String returns the string representation of the symmetry group.
func (s Symmetry) String() string {
	switch s {
	case SymC2:
		return "C2"
	case SymC4:
		return "C4"
	case SymD2Row:
		return "D2|"
	case SymD2Col:
		return "D2-"
	case SymD2Diag:
		return `D2\`
	case SymD2Anti:
		return "D2/"
	case SymD4Ortho:
		return "D4+"
	case SymD4Diag:
		return "D4X"
	case SymD8:
		return "D8"
	}
	return "C1"
}

// requiresSquare reports whether the group maps the horizontal axis onto
// the vertical one, which is only well defined on a square world.
func (s Symmetry) requiresSquare() bool {
	switch s {
	case SymC4, SymD2Diag, SymD2Anti, SymD4Diag, SymD8:
		return true
	}
	return false
}

// allowsTranslation reports whether a per-period translation (dx, dy) keeps
// the group's cell pairing consistent.
func (s Symmetry) allowsTranslation(dx, dy int) bool {
	switch s {
	case SymC1:
		return true
	case SymD2Row:
		return dx == 0
	case SymD2Col:
		return dy == 0
	}
	return dx == 0 && dy == 0
}
