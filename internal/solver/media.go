package solver

import "strings"

// Medium names.
const (
	MediumPhoto = "photo"
	MediumVideo = "video"
	MediumMusic = "music"
	MediumArt   = "art"
	MediumPoem  = "poem"

	// MediumAuto asks for detection from the seed text.
	MediumAuto = "auto"

	defaultMedium = MediumArt
)

type recipe struct {
	title     string
	style     string
	structure string
	platform  string
	delivery  string
	details   []string
}

type medium struct {
	name     string
	synonyms []string
	recipe   recipe
}

// media is scanned in declaration order during detection.
var media = []medium{
	{
		name:     MediumPhoto,
		synonyms: []string{"picture", "image", "shot"},
		recipe: recipe{
			title:     "Photo prompt",
			style:     "Cinematic but natural; prioritize authentic skin tones and tactile color.",
			structure: "Subject first, then context, then lighting and framing, plus a camera cue (lens or aperture).",
			platform:  "Keep it in two short sentences so it pastes cleanly into iOS web fields.",
			delivery:  "Ask for vertical orientation, high resolution, and gentle post-processing.",
			details: []string{
				"Mention time of day and light direction to control shadows.",
				"Call out focal length or depth of field for focus hierarchy.",
				"Use crisp nouns and verbs—avoid vague mood words unless they shape the shot.",
			},
		},
	},
	{
		name:     MediumVideo,
		synonyms: []string{"film", "clip", "reel"},
		recipe: recipe{
			title:     "Video prompt",
			style:     "Story-driven and rhythmic; foreground motion with clear start, middle, and end beats.",
			structure: "Lead with subject and setting, add camera move, pacing, and audio texture cues.",
			platform:  "Write in three sentences, ready for iOS Safari text areas with no markdown symbols.",
			delivery:  "Request 16:9 landscape unless noted, with clean transitions and legible subtitles.",
			details: []string{
				"Specify the opening frame and the closing frame to anchor edits.",
				"Describe one signature movement (dolly in, glide across, or drone reveal).",
				"Note the tone of diegetic sound or soundtrack tempo for timing.",
			},
		},
	},
	{
		name:     MediumMusic,
		synonyms: []string{"song", "track", "audio"},
		recipe: recipe{
			title:     "Music prompt",
			style:     "Concise genre-plus-mood pairing with texture references (analog warmth, glassy synths).",
			structure: "State tempo and time signature, list 3–4 instruments, and define the hook or motif.",
			platform:  "Compact sentences that stay readable in iOS share sheets; no special characters required.",
			delivery:  "Request a clean intro, a 2-bar motif, and a tail for looping.",
			details: []string{
				"Include bpm and rhythm feel (swing, straight, halftime).",
				"Balance one lead voice with supporting harmony and a light percussive bed.",
				"Name a space for the mix (intimate studio, airy hall) to anchor reverb.",
			},
		},
	},
	{
		name:     MediumArt,
		synonyms: []string{"illustration", "drawing", "painting", "concept art"},
		recipe: recipe{
			title:     "Art prompt",
			style:     "Vivid but controlled; emphasize material choices (ink wash, vector, pastel, 3D render).",
			structure: "Subject + silhouette, palette direction, and a texture or brushwork note.",
			platform:  "Two or three compact sentences that stay crisp when pasted into mobile web tools.",
			delivery:  "Request balanced negative space and export-ready at print-safe resolution.",
			details: []string{
				"Describe lighting or shading style (rim light, chiaroscuro, subsurface glow).",
				"Mention perspective or lens feel for depth (isometric, 35mm, telephoto compression).",
				"State palette constraints (triadic brights, muted earth, monochrome accent).",
			},
		},
	},
	{
		name:     MediumPoem,
		synonyms: []string{"poetry", "verse", "haiku", "sonnet"},
		recipe: recipe{
			title:     "Poem prompt",
			style:     "Clear voice with a single emotional color; choose a form to shape rhythm.",
			structure: "Name the subject, pick a form (haiku, sonnet, free verse), and specify imagery anchors.",
			platform:  "Keep to a couple of sentences so it reads well in iOS web or chat inputs.",
			delivery:  "Invite musicality through meter hints and one sensory detail per line.",
			details: []string{
				"State the form or line count to guide cadence.",
				"Offer two sensory images (sound + sight or touch) to keep it concrete.",
				"Suggest a closing turn or surprise to land the emotion.",
			},
		},
	},
}

// Media returns the medium names in registry order.
func Media() []string {
	names := make([]string, len(media))
	for i, m := range media {
		names[i] = m.name
	}
	return names
}

// NormalizeMedium maps a medium name or synonym (any case, surrounding space
// ignored) to its medium. It reports false for empty, "auto" and unknown labels.
func NormalizeMedium(label string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(label))
	if lowered == "" || lowered == MediumAuto {
		return "", false
	}
	for _, m := range media {
		if lowered == m.name {
			return m.name, true
		}
		for _, alias := range m.synonyms {
			if lowered == alias {
				return m.name, true
			}
		}
	}
	return "", false
}

// detectMedium returns the first medium whose name or synonym occurs anywhere in text.
func detectMedium(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, m := range media {
		if strings.Contains(lowered, m.name) {
			return m.name, true
		}
		for _, alias := range m.synonyms {
			if strings.Contains(lowered, alias) {
				return m.name, true
			}
		}
	}
	return "", false
}

func lookupMedium(name string) medium {
	for _, m := range media {
		if m.name == name {
			return m
		}
	}
	return lookupMedium(defaultMedium)
}

// cleanSeed trims surrounding space and any trailing periods.
func cleanSeed(seed string) string {
	return strings.TrimRight(strings.TrimSpace(seed), ".")
}
