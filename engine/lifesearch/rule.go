package lifesearch

import (
	"log/slog"
	"math/bits"
)

// Desc is the neighborhood descriptor of a cell.
//
// It is a 20-bit integer of the form 0b_aaaaaaaa_bbbbbbbb_cc_dd, where:
//
//   - bits 0-1 (dd) are the state of the cell itself,
//   - bits 2-3 (cc) are the state of the successor,
//   - bits 4-11 (b) hold one bit per neighbor that is known alive,
//   - bits 12-19 (a) hold one bit per neighbor that is known dead.
//
// An unknown neighbor sets neither pane bit. Neighbor i of a cell occupies
// bit i of both panes, in the neighbor order NW, W, SW, N, S, NE, E, SE.
type Desc uint32

// NewDesc builds the descriptor of a cell all of whose neighbors share
// one definite state.
func NewDesc(state, succState State) Desc {
	var nbhd Desc
	switch state {
	case Dead:
		nbhd = 0xff00
	case Alive:
		nbhd = 0x00ff
	}
	return nbhd<<4 | Desc(succState)<<2 | Desc(state)
}

// implFlags is a bitset of deductions forced by one descriptor.
type implFlags uint32

const (
	// implConflict marks an inconsistent descriptor.
	implConflict implFlags = 1 << 0

	// implSuccAlive means the successor must be alive.
	implSuccAlive implFlags = 1 << 2
	// implSuccDead means the successor must be dead.
	implSuccDead implFlags = 1 << 3
	// implSucc means the state of the successor is implied.
	implSucc = implSuccAlive | implSuccDead

	// implSelfAlive means the cell itself must be alive.
	implSelfAlive implFlags = 1 << 4
	// implSelfDead means the cell itself must be dead.
	implSelfDead implFlags = 1 << 5
	// implSelf means the state of the cell itself is implied.
	implSelf = implSelfAlive | implSelfDead

	// implNbhd means the state of at least one unknown neighbor is implied.
	// Neighbor i contributes bit 2i+6 (must be alive) and 2i+7 (must be dead).
	implNbhd implFlags = 0xffff << 6
)

// nbhdAliveFlag returns the flag forcing neighbor i alive.
func nbhdAliveFlag(i int) implFlags { return 1 << (2*i + 6) }

// nbhdDeadFlag returns the flag forcing neighbor i dead.
func nbhdDeadFlag(i int) implFlags { return 1 << (2*i + 7) }

// Rule is a life-like transition rule compiled into an implication table:
// one array lookup keyed by a neighborhood descriptor yields everything the
// rule can force about the cell, its successor and its neighbors.
type Rule struct {
	b0        bool
	implTable []implFlags
}

// NewRule compiles the birth and survival neighborhood configurations
// delivered by the rule parser. The table is immutable afterwards and is a
// pure function of the two sets.
func NewRule(birth, survival []uint8) *Rule {
	var bset, sset [256]bool
	for _, m := range birth {
		bset[m] = true
	}
	for _, m := range survival {
		sset[m] = true
	}

	r := &Rule{
		b0:        bset[0],
		implTable: make([]implFlags, 1<<20),
	}
	r.initTrans(&bset, &sset)
	r.initConflict()
	r.initImpl()
	r.initImplNbhd()

	slog.Debug("NewRule", "birth", len(birth), "survival", len(survival), "b0", r.b0)
	return r
}

// HasB0 reports whether an all-dead neighborhood births an alive cell, which
// makes the background of the world alternate between generations.
func (r *Rule) HasB0() bool {
	return r.b0
}

// initTrans deduces the implication for the successor.
func (r *Rule) initTrans(bset, sset *[256]bool) {
	// Fills in the positions of the neighborhood descriptors
	// that have no unknown neighbors.
	for alives := 0; alives <= 0xff; alives++ {
		d := (0xff&^alives)<<12 | alives<<4

		if bset[alives] {
			r.implTable[d|int(Dead)] |= implSuccAlive
		} else {
			r.implTable[d|int(Dead)] |= implSuccDead
		}
		if sset[alives] {
			r.implTable[d|int(Alive)] |= implSuccAlive
		} else {
			r.implTable[d|int(Alive)] |= implSuccDead
		}
		switch {
		case bset[alives] && sset[alives]:
			r.implTable[d] |= implSuccAlive
		case !bset[alives] && !sset[alives]:
			r.implTable[d] |= implSuccDead
		}
	}

	// Fills in the other positions, splitting on the highest unknown
	// neighbor so that each step only consults already-filled entries.
	for unknowns := 1; unknowns <= 0xff; unknowns++ {
		n := 1 << (bits.Len8(uint8(unknowns)) - 1)
		for alives := 0; alives <= 0xff; alives++ {
			if alives&unknowns != 0 {
				continue
			}
			d := (0xff&^alives&^unknowns)<<12 | alives<<4
			d0 := (0xff&^alives&^unknowns|n)<<12 | alives<<4
			d1 := (0xff&^alives&^unknowns)<<12 | (alives|n)<<4

			for _, state := range []int{int(Dead), int(Alive), 0} {
				trans0 := r.implTable[d0|state]
				if trans0 == r.implTable[d1|state] {
					r.implTable[d|state] |= trans0
				}
			}
		}
	}
}

// initConflict deduces the conflicts.
func (r *Rule) initConflict() {
	for nbhd := 0; nbhd < 0xffff; nbhd++ {
		for _, state := range []int{int(Dead), int(Alive), 0} {
			d := nbhd<<4 | state

			if r.implTable[d]&implSuccAlive != 0 {
				r.implTable[d|int(Dead)<<2] = implConflict
			} else if r.implTable[d]&implSuccDead != 0 {
				r.implTable[d|int(Alive)<<2] = implConflict
			}
		}
	}
}

// initImpl deduces the implication for the cell itself.
func (r *Rule) initImpl() {
	for unknowns := 0; unknowns <= 0xff; unknowns++ {
		for alives := 0; alives <= 0xff; alives++ {
			if alives&unknowns != 0 {
				continue
			}
			d := (0xff&^alives&^unknowns)<<12 | alives<<4

			for _, succState := range []int{int(Dead), int(Alive)} {
				var flag implFlags
				if succState == int(Dead) {
					flag = implSuccAlive | implConflict
				} else {
					flag = implSuccDead | implConflict
				}

				possiblyDead := r.implTable[d|int(Dead)]&flag == 0
				possiblyAlive := r.implTable[d|int(Alive)]&flag == 0

				index := d | succState<<2
				switch {
				case possiblyDead && !possiblyAlive:
					r.implTable[index] |= implSelfDead
				case !possiblyDead && possiblyAlive:
					r.implTable[index] |= implSelfAlive
				case !possiblyDead && !possiblyAlive:
					r.implTable[index] = implConflict
				}
			}
		}
	}
}

// initImplNbhd deduces the implication for the neighbors.
func (r *Rule) initImplNbhd() {
	for unknowns := 1; unknowns <= 0xff; unknowns++ {
		for i := 0; i < 8; i++ {
			n := 1 << i
			if unknowns&n == 0 {
				continue
			}
			for alives := 0; alives <= 0xff; alives++ {
				d := (0xff&^alives&^unknowns)<<12 | alives<<4
				d0 := (0xff&^alives&^unknowns|n)<<12 | alives<<4
				d1 := (0xff&^alives&^unknowns)<<12 | (alives|n)<<4

				for _, succState := range []int{int(Dead), int(Alive)} {
					var flag implFlags
					if succState == int(Dead) {
						flag = implSuccAlive | implConflict
					} else {
						flag = implSuccDead | implConflict
					}

					index := d | succState<<2

					for _, state := range []int{int(Dead), int(Alive), 0} {
						possiblyDead := r.implTable[d0|state]&flag == 0
						possiblyAlive := r.implTable[d1|state]&flag == 0

						switch {
						case possiblyDead && !possiblyAlive:
							r.implTable[index|state] |= nbhdDeadFlag(i)
						case !possiblyDead && possiblyAlive:
							r.implTable[index|state] |= nbhdAliveFlag(i)
						case !possiblyDead && !possiblyAlive:
							r.implTable[index|state] = implConflict
						}
					}
				}
			}
		}
	}
}

// implies returns the implication flags for a descriptor.
func (r *Rule) implies(d Desc) implFlags {
	return r.implTable[d]
}
