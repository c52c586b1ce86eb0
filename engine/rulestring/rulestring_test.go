package rulestring

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countMasks returns how many 8-bit configurations have the given number
// of alive neighbors.
func countMasks(count int) int {
	n := 0
	for m := 0; m < 256; m++ {
		if bits.OnesCount8(uint8(m)) == count {
			n++
		}
	}
	return n
}

// TestParseTotalistic tests plain totalistic rule strings
func TestParseTotalistic(t *testing.T) {
	birth, survival, err := Parse("B3/S23")
	require.NoError(t, err)

	assert.Len(t, birth, countMasks(3))
	assert.Len(t, survival, countMasks(2)+countMasks(3))
	for _, m := range birth {
		assert.Equal(t, 3, bits.OnesCount8(m))
	}
	for _, m := range survival {
		c := bits.OnesCount8(m)
		assert.True(t, c == 2 || c == 3, "mask %08b has %d alive neighbors", m, c)
	}
}

// TestParseForms tests that the accepted spellings agree
func TestParseForms(t *testing.T) {
	wantB, wantS, err := Parse("B3/S23")
	require.NoError(t, err)

	for _, input := range []string{"b3/s23", "B3S23", "b3s23", "23/3", "S23/B3", "s23b3", " B3/S23 "} {
		birth, survival, err := Parse(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, wantB, birth, "input %q", input)
		assert.Equal(t, wantS, survival, "input %q", input)
	}
}

// TestParseHighLife tests a rule with two birth counts
func TestParseHighLife(t *testing.T) {
	birth, survival, err := Parse("B36/S23")
	require.NoError(t, err)

	assert.Len(t, birth, countMasks(3)+countMasks(6))
	assert.Len(t, survival, countMasks(2)+countMasks(3))
}

// TestParseB0 tests that the empty neighborhood shows up for B0 rules
func TestParseB0(t *testing.T) {
	birth, _, err := Parse("B0/S8")
	require.NoError(t, err)
	require.NotEmpty(t, birth)
	assert.Equal(t, uint8(0), birth[0])

	birth, _, err = Parse("B3/S23")
	require.NoError(t, err)
	assert.NotEqual(t, uint8(0), birth[0])
}

// TestParseNonTotalistic tests Hensel letter selection and negation
func TestParseNonTotalistic(t *testing.T) {
	tests := []struct {
		input     string
		wantBirth int
	}{
		{"B2ce/S23", len(henselClasses[2]['c']) + len(henselClasses[2]['e'])},
		{"B2-a/S23", countMasks(2) - len(henselClasses[2]['a'])},
		{"B3-q/S23", countMasks(3) - len(henselClasses[3]['q'])},
		{"B36-i/S23", countMasks(3) + countMasks(6) - len(henselClasses[6]['i'])},
	}
	for _, tt := range tests {
		birth, _, err := Parse(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Len(t, birth, tt.wantBirth, "input %q", tt.input)
	}
}

// TestParseNonTotalisticSubsets tests that letter selections nest as expected
func TestParseNonTotalisticSubsets(t *testing.T) {
	full, _, err := Parse("B3/S")
	require.NoError(t, err)
	neg, _, err := Parse("B3-q/S")
	require.NoError(t, err)
	only, _, err := Parse("B3q/S")
	require.NoError(t, err)

	seen := make(map[uint8]bool, len(neg))
	for _, m := range neg {
		seen[m] = true
	}
	for _, m := range only {
		assert.False(t, seen[m], "mask %08b in both 3q and 3-q", m)
	}
	assert.Len(t, full, len(neg)+len(only))
}

// TestHenselClassesPartitionCounts tests that for every count the letter
// classes are disjoint and together cover exactly the configurations with
// that many alive neighbors.
func TestHenselClassesPartitionCounts(t *testing.T) {
	for count := 1; count <= 7; count++ {
		var seen [256]bool
		total := 0
		for letter, class := range henselClasses[count] {
			for _, ring := range class {
				assert.Equal(t, count, bits.OnesCount8(ring),
					"class %d%c holds mask %08b", count, letter, ring)
				assert.False(t, seen[ring],
					"mask %08b appears in two classes of count %d", ring, count)
				seen[ring] = true
				total++
			}
		}
		assert.Equal(t, countMasks(count), total, "count %d", count)
	}
}

// TestHenselClassesClosed tests that every class is closed under the eight
// square symmetries.
func TestHenselClassesClosed(t *testing.T) {
	for count, classes := range henselClasses {
		for letter, class := range classes {
			members := make(map[uint8]bool, len(class))
			for _, ring := range class {
				members[ring] = true
			}
			for _, ring := range class {
				for rot := 0; rot < 8; rot += 2 {
					for _, reflect := range []bool{false, true} {
						assert.True(t, members[ringTransform(ring, rot, reflect)],
							"class %d%c not closed", count, letter)
					}
				}
			}
		}
	}
}

// TestParseErrors tests malformed rule strings
func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"B9/S23",
		"B3x/S23",
		"B3-/S23",
		"B0c/S2",
		"B3/S23/4",
		"23",
		"B3/23",
		"B3/S23b1",
	}
	for _, input := range inputs {
		_, _, err := Parse(input)
		require.Error(t, err, "input %q", input)
		var perr *ParseError
		assert.ErrorAs(t, err, &perr, "input %q", input)
	}
}
