package listparse

import "strings"

// emojiRanges covers the pictographic and symbol code points that show up
// in list descriptions (flags, emoticons, transport, dingbats, variation
// selectors, the zero-width joiner).
var emojiRanges = [][2]rune{
	{0x1F1E0, 0x1F1FF}, // regional indicators / flags
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport & map symbols
	{0x1F700, 0x1F77F}, // alchemical symbols
	{0x1F780, 0x1F7FF}, // geometric shapes extended
	{0x1F800, 0x1F8FF}, // supplemental arrows-C
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA00, 0x1FA6F}, // chess symbols
	{0x1FA70, 0x1FAFF}, // symbols and pictographs extended-A
	{0x2600, 0x2B55},   // misc symbols through dingbats and arrows
	{0xFE00, 0xFE0F},   // variation selectors
	{0x200D, 0x200D},   // zero-width joiner
	{0x231A, 0x231A},
	{0x23CF, 0x23CF},
	{0x23E9, 0x23E9},
	{0x3030, 0x3030},
}

func isEmoji(r rune) bool {
	for _, rr := range emojiRanges {
		if r >= rr[0] && r <= rr[1] {
			return true
		}
	}
	return false
}

// StripEmoji removes pictographic code points from s and normalizes the
// remaining whitespace to single spaces. Applying it twice yields the same
// result as once.
func StripEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isEmoji(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
