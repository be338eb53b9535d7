package solver

import (
	"fmt"
	"strings"

	"gusto/internal/logging"
)

// vocabulary is a closed word set with the descriptor used when no token matches.
type vocabulary struct {
	words    map[string]struct{}
	fallback string
}

func newVocabulary(fallback string, words ...string) vocabulary {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return vocabulary{words: set, fallback: fallback}
}

// pick returns the first token in the vocabulary, or the fallback.
func (v vocabulary) pick(tokens []string) string {
	for _, tok := range tokens {
		if _, ok := v.words[tok]; ok {
			return tok
		}
	}
	return v.fallback
}

var (
	moodWords = newVocabulary("dreamy",
		"dreamy", "moody", "joyful", "serene", "melancholy", "playful", "eerie",
		"cozy", "epic", "nostalgic", "hopeful", "mysterious", "calm", "wild",
		"enchanted", "haunted", "gentle", "bold")
	artStyleWords = newVocabulary("watercolor",
		"watercolor", "oil", "ink", "pastel", "vector", "pixel", "charcoal",
		"gouache", "lowpoly", "isometric", "anime", "surreal", "minimalist",
		"baroque", "impressionist", "cyberpunk", "neon", "retro")
	audioColorWords = newVocabulary("warm",
		"warm", "bright", "dark", "airy", "lush", "gritty", "glassy", "mellow",
		"crisp", "hazy", "velvet", "shimmering", "deep", "lofi", "analog")
	motionWords = newVocabulary("slow",
		"slow", "sweeping", "drifting", "frenetic", "gliding", "spinning",
		"floating", "rushing", "steady", "handheld", "aerial", "looping",
		"timelapse", "sunrise", "sunset")
)

// BuildPromptPack turns one seed into matching photo, video, music, art and poem prompts.
func BuildPromptPack(seed string) (Solution, error) {
	if strings.TrimSpace(seed) == "" {
		return Solution{}, ErrEmptySeed
	}

	tokens := strings.Fields(strings.ToLower(seed))
	mood := moodWords.pick(tokens)
	style := artStyleWords.pick(tokens)
	sound := audioColorWords.pick(tokens)
	motion := motionWords.pick(tokens)
	logging.CreativeDebug("pack mood=%s style=%s sound=%s motion=%s", mood, style, sound, motion)

	cleaned := cleanSeed(seed)
	answer := fmt.Sprintf("Prompt pack for '%s' — mood: %s, style: %s, sound: %s, motion: %s",
		cleaned, mood, style, sound, motion)
	details := []string{
		fmt.Sprintf("Photo: %s, %s atmosphere, natural light raking from the side, 35mm lens, shallow depth of field.", cleaned, mood),
		fmt.Sprintf("Video: %s, %s camera movement, %s pacing with a clear opening and closing frame.", cleaned, motion, mood),
		fmt.Sprintf("Music: a %s, %s track inspired by %s, 90 bpm, with a two-bar hook that loops cleanly.", sound, mood, cleaned),
		fmt.Sprintf("Art: %s rendered in a %s style, %s palette, balanced negative space.", cleaned, style, mood),
		fmt.Sprintf("Poem: a short %s poem about %s, one sensory image per line and a turn in the last line.", mood, cleaned),
	}
	return Solution{Kind: KindPromptPack, Answer: answer, Details: details}, nil
}
