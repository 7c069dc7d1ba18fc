package fieldproj

import "math/bits"

// buildStringInteriorMask derives, from the structural-quote bitmap, the
// bitmap of bytes lying strictly between a matched pair of structural
// quotes. The quote bytes themselves are not interior and stay 0.
//
// Words are processed left to right carrying a single parity bit: whether
// an odd number of structural quotes have been seen once this word's
// quotes are included (meaning the word ends inside a string, so the
// XOR-of-smears pattern is inverted).
func buildStringInteriorMask(quote []word, dst []word) []word {
	s := resizeWords(dst, len(quote))
	inside := false
	for i, q := range quote {
		var m word
		for rest := q; rest != 0; rest = dropLowest(rest) {
			m ^= smearLowest(rest)
		}
		if bits.OnesCount32(uint32(q))%2 != 0 {
			inside = !inside
		}
		if inside {
			m = ^m
		}
		s[i] = m &^ q
	}
	return s
}

// applyStringMask clears from m every bit that is set in the string
// interior mask s, so colons and braces inside string literals never
// count as structure.
func applyStringMask(m, s, dst []word) []word {
	out := resizeWords(dst, len(m))
	for i := range m {
		out[i] = m[i] &^ s[i]
	}
	return out
}
