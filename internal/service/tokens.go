package service

import (
	"math"
	"strings"
)

// EstimateTokens approximates the token cost of text for budget math. The
// heuristic, ceil(words * 1.3) + ceil(chars * 0.1) with whitespace word
// splitting, is the agreed contract for every budget tier, so that caps stay
// comparable across tiers. It is deliberately not an exact tokenizer.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	chars := len([]rune(text))
	return int(math.Ceil(float64(words)*1.3)) + int(math.Ceil(float64(chars)*0.1))
}
