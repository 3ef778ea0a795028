package decision

import "github.com/angel-assistant/angel-core/internal/profile"

// Fixed detail values and fallback pools used when the profile carries no
// preference.
const (
	fallbackPlaylist     = "playlist_ambiance"
	storyDurationMin     = 2
	programDurationMin   = 30
	programMinRating     = 4.0
	mealListeningVolume  = 40
	quietListeningVolume = 30
)

var (
	genericMusicGenres = []string{"ambiance", "jazz", "pop"}
	fallbackStoryPool  = []string{"aventure", "humour", "culture"}
	fallbackConvoPool  = []string{"actualités", "santé", "loisirs", "culture"}
)

// expandDetails builds the actuation parameters for a recommendation type.
// pick selects an index in [0, n) and is injected so tests are
// deterministic.
func (e *Engine) expandDetails(t RecType, activity string, prefs profile.Preferences) map[string]any {
	switch t {
	case RecPlayMusic, RecPlayClassicalMusic:
		return e.musicDetails(t, activity)

	case RecTellStory:
		return map[string]any{
			"topic":        pickString(e.pick, prefs.StoryTopics, fallbackStoryPool),
			"duration_min": storyDurationMin,
			"complexity":   "medium",
		}

	case RecStartConversation:
		// Conversation topics draw on everything the user follows.
		topics := make([]string, 0, len(prefs.TVCategories)+len(prefs.StoryTopics))
		topics = append(topics, prefs.TVCategories...)
		topics = append(topics, prefs.StoryTopics...)
		return map[string]any{
			"topic":     pickString(e.pick, topics, fallbackConvoPool),
			"style":     "casual",
			"max_turns": e.maxTurns,
		}

	case RecSuggestProgram, RecSuggestDocumentary:
		category := "divertissement"
		if t == RecSuggestDocumentary {
			category = "documentaire"
		}
		return map[string]any{
			"category":     category,
			"duration_min": programDurationMin,
			"rating_min":   programMinRating,
		}
	}

	return map[string]any{}
}

// musicDetails resolves the playlist name through the configured playlists
// map: key "repas" during meals, "ambiance" otherwise.
func (e *Engine) musicDetails(t RecType, activity string) map[string]any {
	genre := "classique"
	if t != RecPlayClassicalMusic {
		genre = genericMusicGenres[e.pick(len(genericMusicGenres))]
	}

	playlistKey := "ambiance"
	volume := quietListeningVolume
	if activity == "manger" {
		playlistKey = "repas"
		volume = mealListeningVolume
	}
	playlist, ok := e.playlists[playlistKey]
	if !ok {
		playlist = fallbackPlaylist
	}

	return map[string]any{
		"genre":    genre,
		"playlist": playlist,
		"volume":   volume,
	}
}

// pickString chooses one element with the injected selector, drawing from
// the fallback pool when options is empty.
func pickString(pick func(int) int, options, fallback []string) string {
	if len(options) == 0 {
		options = fallback
	}
	return options[pick(len(options))]
}
