// Package solver routes a free-text problem to the first strategy that can answer it.
//
// Strategies are tried in a fixed order (math, then anagram) and the brainstorm
// fallback answers whatever is left. The creative prompt builders live beside
// them and are reached through their own modes rather than the default chain.
// Everything here is a pure function over immutable tables.
package solver

import (
	"errors"
	"strings"
)

// Solution kinds.
const (
	KindMath       = "Math"
	KindAnagram    = "Anagram"
	KindCreative   = "Creative Prompt"
	KindPromptPack = "Prompt Pack"
	KindBrainstorm = "Brainstorm"
)

var (
	// ErrEmptySeed is returned when a prompt builder gets no usable words.
	ErrEmptySeed = errors.New("please provide a few words to shape into a prompt")

	// ErrUnknownMode is returned by Dispatch for a mode it does not route.
	ErrUnknownMode = errors.New("unknown solver mode")
)

// Solution is the result of one dispatch call.
type Solution struct {
	Kind    string   `json:"kind"`
	Answer  string   `json:"answer"`
	Details []string `json:"details,omitempty"`
}

// Banner is the headline shown above a solution.
func (s Solution) Banner() string {
	return "✨ " + s.Kind + " solution ready! ✨"
}

// Format renders the solution as plain text: banner, answer, then one "- " line per detail.
func (s Solution) Format() string {
	parts := []string{s.Banner(), s.Answer}
	if len(s.Details) > 0 {
		lines := make([]string, len(s.Details))
		for i, d := range s.Details {
			lines[i] = "- " + d
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n")
}

func newSolution(kind, answer string, details []string) Solution {
	var copied []string
	if len(details) > 0 {
		copied = make([]string, len(details))
		copy(copied, details)
	}
	return Solution{Kind: kind, Answer: answer, Details: copied}
}
