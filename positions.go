package fieldproj

import "math/bits"

// positions converts a level bitmap into its ascending sequence of
// absolute byte offsets.
func positions(level []word) []int {
	var out []int
	for i, w := range level {
		for rest := w; rest != 0; rest = dropLowest(rest) {
			b := lowest(rest)
			out = append(out, 32*i+bits.TrailingZeros32(uint32(b)))
		}
	}
	return out
}
