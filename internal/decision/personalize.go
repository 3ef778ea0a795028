package decision

import "github.com/angel-assistant/angel-core/internal/profile"

// personalize substitutes generic recommendation types for more specific
// ones the user prefers. Substitutions are exclusive: the generic type is
// replaced, never duplicated alongside its specialised form.
func personalize(types []RecType, prefs profile.Preferences) []RecType {
	out := make([]RecType, len(types))
	for i, t := range types {
		out[i] = t
		switch t {
		case RecSuggestProgram:
			if prefs.HasTVCategory("documentaires") {
				out[i] = RecSuggestDocumentary
			}
		case RecPlayMusic:
			if prefs.HasMusicGenre("classique") {
				out[i] = RecPlayClassicalMusic
			}
		}
	}
	return out
}
