package lifesearch

import (
	"log/slog"
	"time"
)

// Search is the backtracking engine. It keeps a trail of every cell that
// currently holds a definite state, in assignment order, and a cursor into
// the trail separating propagated entries from pending ones. Backing up
// pops the trail to the most recent free guess and flips it.
type Search struct {
	world *World

	trail []int
	next  int

	started time.Time
	elapsed time.Duration
}

// NewSearch creates a search over a freshly built (or partially seeded) world.
func NewSearch(world *World) *Search {
	return &Search{
		world: world,
		trail: make([]int, 0, world.sentinel),
	}
}

// World returns the searched world.
func (s *Search) World() *World {
	return s.world
}

// Elapsed returns the wall-clock duration of the most recent Search call.
func (s *Search) Elapsed() time.Duration {
	return s.elapsed
}

// setCell assigns a state to a cell and records it on the trail. A cell
// already holding the same state is left alone; a cell holding the opposite
// state is a conflict.
func (s *Search) setCell(i int, state State) bool {
	c := &s.world.cells[i]
	if c.state == state {
		return true
	}
	if c.state != Unknown {
		return false
	}
	s.world.setState(i, state, false)
	s.trail = append(s.trail, i)
	return true
}

// consistify applies the implication flags of one cell's descriptor,
// forcing its successor, itself, or its neighbors as far as the rule
// allows. It reports false on a conflict.
func (s *Search) consistify(i int) bool {
	w := s.world
	c := &w.cells[i]
	if c.succ < 0 {
		// The sentinel carries no transition constraint of its own.
		return true
	}

	flags := w.rule.implies(c.desc)
	if flags&implConflict != 0 {
		return false
	}
	if flags&implSucc != 0 {
		state := Alive
		if flags&implSuccDead != 0 {
			state = Dead
		}
		if !s.setCell(c.succ, state) {
			return false
		}
	}
	if flags&implSelf != 0 {
		state := Alive
		if flags&implSelfDead != 0 {
			state = Dead
		}
		if !s.setCell(i, state) {
			return false
		}
	}
	if flags&implNbhd != 0 {
		for j, nb := range c.nbhd {
			nf := flags >> (2*j + 6) & 0b11
			if nf == 0 || nb < 0 {
				continue
			}
			state := Alive
			if nf&0b10 != 0 {
				state = Dead
			}
			if !s.setCell(nb, state) {
				return false
			}
		}
	}
	return true
}

// consistify10 consistifies a cell, its predecessor, and its eight
// neighbors: the ten cells whose descriptors a single state change of the
// cell alters.
func (s *Search) consistify10(i int) bool {
	if !s.consistify(i) {
		return false
	}
	c := &s.world.cells[i]
	if c.pred >= 0 && !s.consistify(c.pred) {
		return false
	}
	for _, nb := range c.nbhd {
		if nb >= 0 && !s.consistify(nb) {
			return false
		}
	}
	return true
}

// propagate forces everything that can be deduced from the pending trail
// entries, advancing the cursor to the trail's end or stopping at a
// conflict. Symmetry twins of each entry are set before its transition
// constraints are examined.
func (s *Search) propagate() bool {
	for s.next < len(s.trail) {
		i := s.trail[s.next]
		state := s.world.cells[i].state
		for _, twin := range s.world.cells[i].sym {
			if !s.setCell(twin, state) {
				return false
			}
		}
		if !s.consistify10(i) {
			return false
		}
		s.next++
	}
	return true
}

// backup rewinds the trail to the most recent free guess, resetting every
// forced cell on the way to unknown, then flips the guess and clears its
// free flag. It reports false when no guess is left to flip.
func (s *Search) backup() bool {
	for len(s.trail) > 0 {
		i := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		c := &s.world.cells[i]
		if c.free {
			state := Alive
			if c.state == Alive {
				state = Dead
			}
			s.world.setState(i, state, false)
			s.trail = append(s.trail, i)
			s.next = len(s.trail) - 1
			return true
		}
		s.world.setState(i, Unknown, false)
	}
	s.next = 0
	return false
}

// run propagates to a fixed point, backing up on every conflict, until the
// world is consistent or the search space is exhausted.
func (s *Search) run() bool {
	for {
		if s.propagate() {
			return true
		}
		if !s.backup() {
			return false
		}
	}
}

// Search looks for the next pattern. It returns true when the world's cell
// states hold a non-trivial pattern, and false when the search space is
// exhausted. Calling it again resumes behind the previous result.
func (s *Search) Search() bool {
	s.started = time.Now()

	// A world with nothing left to guess (a previous result, or a fully
	// seeded block) must first step past its current assignment.
	if s.world.getUnknown() < 0 {
		if !s.backup() {
			s.elapsed = time.Since(s.started)
			return false
		}
	}

	for s.run() {
		if i := s.world.getUnknown(); i >= 0 {
			// Guess dead first; backup flips the guess to alive.
			s.world.setState(i, Dead, true)
			s.trail = append(s.trail, i)
		} else if s.world.nontrivial() {
			s.elapsed = time.Since(s.started)
			slog.Debug("Search found a pattern", "trail", len(s.trail), "elapsed", s.elapsed)
			return true
		} else if !s.backup() {
			break
		}
	}

	s.elapsed = time.Since(s.started)
	slog.Debug("Search exhausted", "elapsed", s.elapsed)
	return false
}
