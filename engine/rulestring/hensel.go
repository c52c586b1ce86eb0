package rulestring

// Isotropic non-totalistic (Hensel) neighborhood classes.
//
// Internally a neighborhood is an 8-bit mask over the ring order
// N, NE, E, SE, S, SW, W, NW (bit 0 = N). In this order a 90-degree
// rotation of the board adds 2 to every ring index and a reflection
// negates it, so the eight square symmetries are exactly the index maps
// i -> ±i + 2k (mod 8). A Hensel class is one orbit of that action.
//
// The masks handed out by Parse use the searcher's neighbor order
// NW, W, SW, N, S, NE, E, SE instead; ringToCore converts between the two.

// ringToCore maps a ring index (bit position above) to the bit position
// used in the masks returned by Parse.
var ringToCore = [8]int{3, 5, 6, 7, 4, 2, 1, 0}

// letterOrder lists the valid Hensel letters per alive-neighbor count.
var letterOrder = map[int]string{
	0: "",
	1: "ce",
	2: "cekain",
	3: "cekainyqjr",
	4: "cekainyqjrtwz",
	5: "cekainyqjr",
	6: "cekain",
	7: "ce",
	8: "",
}

// ringMask builds a ring-order mask from ring indices.
func ringMask(bits ...int) uint8 {
	var m uint8
	for _, b := range bits {
		m |= 1 << b
	}
	return m
}

// henselReps holds one representative neighborhood per (count, letter),
// in ring order. Counts 5..7 are filled in at init time as the bitwise
// complements of counts 3..1, matching the complement symmetry of the
// published chart.
var henselReps = map[int]map[byte]uint8{
	1: {
		'c': ringMask(1),
		'e': ringMask(0),
	},
	2: {
		'c': ringMask(1, 3),
		'e': ringMask(0, 2),
		'k': ringMask(0, 3),
		'a': ringMask(0, 1),
		'i': ringMask(0, 4),
		'n': ringMask(1, 5),
	},
	3: {
		'c': ringMask(1, 3, 5),
		'e': ringMask(0, 2, 4),
		'k': ringMask(0, 2, 5),
		'a': ringMask(6, 7, 0),
		'i': ringMask(7, 0, 1),
		'n': ringMask(0, 3, 7),
		'y': ringMask(0, 4, 7),
		'q': ringMask(7, 0, 2),
		'j': ringMask(0, 5, 7),
		'r': ringMask(0, 3, 5),
	},
	4: {
		'c': ringMask(1, 3, 5, 7),
		'e': ringMask(0, 2, 4, 6),
		'k': ringMask(1, 2, 4, 5),
		'a': ringMask(6, 7, 0, 1),
		'i': ringMask(0, 1, 3, 4),
		'n': ringMask(0, 1, 5, 7),
		'y': ringMask(1, 3, 4, 6),
		'q': ringMask(1, 2, 5, 7),
		'j': ringMask(0, 1, 2, 5),
		'r': ringMask(2, 4, 6, 7),
		't': ringMask(0, 4, 6, 7),
		'w': ringMask(1, 2, 3, 6),
		'z': ringMask(0, 1, 4, 5),
	},
}

// henselClasses holds the full orbit of every (count, letter) class,
// in ring order.
var henselClasses = map[int]map[byte][]uint8{}

func init() {
	for count, src := range map[int]int{5: 3, 6: 2, 7: 1} {
		henselReps[count] = make(map[byte]uint8, len(henselReps[src]))
		for letter, rep := range henselReps[src] {
			henselReps[count][letter] = ^rep
		}
	}
	for count, reps := range henselReps {
		henselClasses[count] = make(map[byte][]uint8, len(reps))
		for letter, rep := range reps {
			henselClasses[count][letter] = orbit(rep)
		}
	}
}

// ringTransform applies one square symmetry (i -> ±i + rot) to a ring mask.
func ringTransform(mask uint8, rot int, reflect bool) uint8 {
	var out uint8
	for i := 0; i < 8; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		j := i
		if reflect {
			j = -j
		}
		j = ((j+rot)%8 + 8) % 8
		out |= 1 << j
	}
	return out
}

// orbit returns every distinct image of mask under the eight square symmetries.
func orbit(mask uint8) []uint8 {
	var out []uint8
	var seen [256]bool
	for rot := 0; rot < 8; rot += 2 {
		for _, reflect := range []bool{false, true} {
			m := ringTransform(mask, rot, reflect)
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}
