package solver

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gusto/internal/logging"
)

type anagramEntry struct {
	source string
	words  []string
}

// anagramLibrary is iterated in declaration order.
var anagramLibrary = []anagramEntry{
	{source: "listen", words: []string{"silent", "enlist", "tinsel"}},
	{source: "evil", words: []string{"vile", "veil", "live"}},
	{source: "angel", words: []string{"glean", "angle"}},
	{source: "stressed", words: []string{"desserts"}},
	{source: "save", words: []string{"vase"}},
}

var (
	anagramPattern = regexp.MustCompile(`(?:anagram of|unscramble)\s+([a-z]+)`)
	anagramDetails = []string{"Try speaking the options out loud—sometimes the silliest sounds win!"}
)

// AnagramStrategy answers "anagram of <word>" and "unscramble <word>" requests.
type AnagramStrategy struct{}

// Name implements Strategy.
func (AnagramStrategy) Name() string { return "anagram" }

// Attempt declines unless the problem contains an anagram request.
func (AnagramStrategy) Attempt(problem string) (Solution, bool) {
	match := anagramPattern.FindStringSubmatch(strings.ToLower(problem))
	if match == nil {
		return Solution{}, false
	}

	target := match[1]
	key := canonical(target)
	var candidates []string
	for _, entry := range anagramLibrary {
		if canonical(entry.source) == key {
			candidates = append(candidates, entry.words...)
		}
	}
	logging.AnagramDebug("target=%s canonical=%s candidates=%d", target, key, len(candidates))

	var answer string
	if len(candidates) == 0 {
		answer = fmt.Sprintf("I could not find a perfect match, but '%s' looks like a fun jumble!", key)
	} else {
		answer = fmt.Sprintf("Possible anagram buddies for '%s': %s", target, strings.Join(candidates, ", "))
	}
	return newSolution(KindAnagram, answer, anagramDetails), true
}

// canonical returns the word's letters in sorted order.
func canonical(word string) string {
	letters := []rune(word)
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return string(letters)
}
