package solver

import (
	"fmt"
	"strings"

	"gusto/internal/logging"
)

const mobileFirstDetail = "Mobile-first: short sentences, no markdown, ready for iOS web share sheets."

// ResolveMedium picks the medium for a seed: a recognised hint wins, then the
// first medium mentioned in the seed, then art.
func ResolveMedium(seed, hint string) string {
	if m, ok := NormalizeMedium(hint); ok {
		return m
	}
	if m, ok := detectMedium(seed); ok {
		return m
	}
	return defaultMedium
}

// BuildPrompt shapes a short idea into a structured prompt for one medium.
// An empty hint or "auto" detects the medium from the seed.
func BuildPrompt(seed, mediumHint string) (Solution, error) {
	if strings.TrimSpace(seed) == "" {
		return Solution{}, ErrEmptySeed
	}

	name := ResolveMedium(seed, mediumHint)
	r := lookupMedium(name).recipe
	logging.CreativeDebug("prompt medium=%s hint=%q", name, mediumHint)

	answer := fmt.Sprintf("%s: %s. Style: %s Structure: %s Platform fit: %s Delivery notes: %s",
		r.title, cleanSeed(seed), r.style, r.structure, r.platform, r.delivery)

	details := make([]string, 0, len(r.details)+1)
	details = append(details, r.details...)
	details = append(details, mobileFirstDetail)
	return Solution{Kind: KindCreative, Answer: answer, Details: details}, nil
}
