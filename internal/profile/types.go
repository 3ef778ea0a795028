package profile

import "time"

// Profile holds a user's preferences and accumulated interaction history.
//
// A profile is loaded per request; the engine does not guarantee
// cross-request identity unless the caller supplies the same user ID.
type Profile struct {
	ID          string      `json:"id"`
	Preferences Preferences `json:"preferences"`

	// ActivityHistory is an ordered, append-only sequence of observed
	// activities recorded during analysis.
	ActivityHistory []ActivityRecord `json:"activity_history"`

	// FeedbackHistory maps a recommendation batch ID to the feedback
	// the user gave on it.
	FeedbackHistory map[string]Feedback `json:"feedback_history"`
}

// Preferences holds the user's content preferences.
type Preferences struct {
	MusicGenres  []string `json:"music_genres"`
	TVCategories []string `json:"tv_programs"`
	StoryTopics  []string `json:"story_topics"`
}

// ActivityRecord is one observed activity appended during analysis.
type ActivityRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Activity   string    `json:"activity"`
	Confidence float64   `json:"confidence"`
}

// Feedback records the user's reaction to a recommendation batch.
type Feedback struct {
	Accepted  bool      `json:"accepted"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HasMusicGenre reports whether the preferences list the given music genre.
func (p Preferences) HasMusicGenre(genre string) bool {
	return contains(p.MusicGenres, genre)
}

// HasTVCategory reports whether the preferences list the given TV category.
func (p Preferences) HasTVCategory(category string) bool {
	return contains(p.TVCategories, category)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// DeepCopy creates a complete independent copy of the Profile.
// All slice and map fields are cloned so modifications to the copy
// do not affect the original.
func (p *Profile) DeepCopy() *Profile {
	if p == nil {
		return nil
	}

	cpy := *p

	cpy.Preferences.MusicGenres = cloneStrings(p.Preferences.MusicGenres)
	cpy.Preferences.TVCategories = cloneStrings(p.Preferences.TVCategories)
	cpy.Preferences.StoryTopics = cloneStrings(p.Preferences.StoryTopics)

	if p.ActivityHistory != nil {
		cpy.ActivityHistory = make([]ActivityRecord, len(p.ActivityHistory))
		copy(cpy.ActivityHistory, p.ActivityHistory)
	}

	if p.FeedbackHistory != nil {
		cpy.FeedbackHistory = make(map[string]Feedback, len(p.FeedbackHistory))
		for k, v := range p.FeedbackHistory {
			cpy.FeedbackHistory[k] = v
		}
	}

	return &cpy
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	cpy := make([]string, len(s))
	copy(cpy, s)
	return cpy
}
