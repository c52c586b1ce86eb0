// Package rulestring parses rule strings of life-like cellular automata.
//
// It accepts totalistic rules (B3/S23, b36s23, and the traditional
// survival/birth form 23/3) as well as isotropic non-totalistic rules in
// Hensel notation (B3-q/S2-c3, B2ce/S02). A parsed rule is returned as two
// lists of 8-bit neighborhood configurations, one byte per concrete
// alive/dead assignment of the eight neighbors. Bit i of a configuration
// says that neighbor i is alive, in the neighbor order NW, W, SW, N, S,
// NE, E, SE shared with the search engine.
package rulestring

import (
	"fmt"
	"math/bits"
	"strings"
)

// ParseError reports a malformed rule string.
type ParseError struct {
	Input string
	Msg   string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("rulestring: cannot parse %q: %s", e.Input, e.Msg)
}

// Parse parses a rule string and returns the birth and survival
// neighborhood configurations.
func Parse(input string) (birth, survival []uint8, err error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return nil, nil, &ParseError{Input: input, Msg: "empty rule"}
	}

	var bSec, sSec string
	switch {
	case s[0] == 'b':
		bSec, sSec, err = splitMarked(input, s[1:], 'b', 's')
	case s[0] == 's':
		sSec, bSec, err = splitMarked(input, s[1:], 's', 'b')
	default:
		// Traditional survival/birth form, e.g. "23/3".
		i := strings.IndexByte(s, '/')
		if i < 0 {
			return nil, nil, &ParseError{Input: input, Msg: "missing birth/survival separator"}
		}
		sSec, bSec = s[:i], s[i+1:]
		if strings.ContainsAny(bSec, "/bs") {
			return nil, nil, &ParseError{Input: input, Msg: "too many sections"}
		}
	}
	if err != nil {
		return nil, nil, err
	}

	birth, err = parseSection(input, bSec)
	if err != nil {
		return nil, nil, err
	}
	survival, err = parseSection(input, sSec)
	if err != nil {
		return nil, nil, err
	}
	return birth, survival, nil
}

// splitMarked splits the remainder of a rule whose first section marker has
// already been consumed, e.g. "3/s23" or "3s23" after an initial 'b'.
func splitMarked(input, rest string, first, second byte) (string, string, error) {
	i := strings.IndexAny(rest, string(second)+"/")
	if i < 0 {
		// A single section; the other set is empty.
		return rest, "", nil
	}
	head := rest[:i]
	tail := rest[i:]
	tail = strings.TrimPrefix(tail, "/")
	if tail != "" {
		if tail[0] != second {
			return "", "", &ParseError{Input: input, Msg: fmt.Sprintf("expected %q section", second)}
		}
		tail = tail[1:]
	}
	if strings.ContainsAny(tail, "/"+string(first)+string(second)) {
		return "", "", &ParseError{Input: input, Msg: "too many sections"}
	}
	return head, tail, nil
}

// parseSection parses one birth or survival section into configuration masks.
func parseSection(input, sec string) ([]uint8, error) {
	var selected [256]bool
	pos := 0
	for pos < len(sec) {
		ch := sec[pos]
		if ch < '0' || ch > '8' {
			return nil, &ParseError{Input: input, Msg: fmt.Sprintf("unexpected character %q", ch)}
		}
		count := int(ch - '0')
		pos++

		negate := false
		if pos < len(sec) && sec[pos] == '-' {
			negate = true
			pos++
		}
		start := pos
		for pos < len(sec) && sec[pos] >= 'a' && sec[pos] <= 'z' {
			pos++
		}
		letters := sec[start:pos]

		if letters == "" {
			if negate {
				return nil, &ParseError{Input: input, Msg: fmt.Sprintf("missing letters after %d-", count)}
			}
			// Totalistic item: every configuration with this many
			// alive neighbors.
			for m := 0; m < 256; m++ {
				if bits.OnesCount8(uint8(m)) == count {
					selected[m] = true
				}
			}
			continue
		}

		order := letterOrder[count]
		if order == "" {
			return nil, &ParseError{Input: input, Msg: fmt.Sprintf("count %d takes no letters", count)}
		}
		var picked [256]bool
		for i := 0; i < len(letters); i++ {
			letter := letters[i]
			if !strings.ContainsRune(order, rune(letter)) {
				return nil, &ParseError{Input: input, Msg: fmt.Sprintf("invalid letter %q for count %d", letter, count)}
			}
			picked[letter] = true
		}
		for i := 0; i < len(order); i++ {
			letter := order[i]
			if picked[letter] == negate {
				continue
			}
			for _, ring := range henselClasses[count][letter] {
				selected[ringToCoreMask(ring)] = true
			}
		}
	}

	var out []uint8
	for m := 0; m < 256; m++ {
		if selected[m] {
			out = append(out, uint8(m))
		}
	}
	return out, nil
}

// ringToCoreMask rewrites a ring-order mask into the searcher's neighbor
// bit order.
func ringToCoreMask(ring uint8) uint8 {
	var out uint8
	for i := 0; i < 8; i++ {
		if ring&(1<<i) != 0 {
			out |= 1 << ringToCore[i]
		}
	}
	return out
}
