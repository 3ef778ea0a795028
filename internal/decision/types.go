package decision

import (
	"time"

	"github.com/angel-assistant/angel-core/internal/timectx"
)

// RecType identifies a recommendation type. Values are stable wire
// identifiers shared with the activity sensors and downstream actuators.
type RecType string

// Recommendation types known to the engine.
const (
	RecPlayMusic          RecType = "diffuser_musique"
	RecPlayClassicalMusic RecType = "diffuser_musique_classique"
	RecTellStory          RecType = "raconter_histoire"
	RecStartConversation  RecType = "engager_conversation"
	RecSuggestProgram     RecType = "recommander_programme"
	RecSuggestDocumentary RecType = "recommander_documentaire"
	RecSuggestActivity    RecType = "suggerer_activite"
	RecSuggestDrink       RecType = "suggerer_boisson"
	RecSuggestNews        RecType = "suggerer_actualites"
	RecSuggestOutdoor     RecType = "suggerer_activite_exterieure"
)

// Observation is a single activity detection reported by a sensor pipeline.
// Detail carries detector-specific extras (location, posture) and is passed
// through unchanged.
type Observation struct {
	UserID     string         `json:"user_id"`
	Activity   string         `json:"activity"`
	Confidence float64        `json:"confidence"`
	Timestamp  time.Time      `json:"timestamp"`
	Detail     map[string]any `json:"detail,omitempty"`
}

// Candidate is one scored recommendation within a batch.
type Candidate struct {
	Type     RecType        `json:"type"`
	Priority float64        `json:"priority"`
	Details  map[string]any `json:"details"`
}

// Batch is the ordered result of one decision cycle. Candidates are sorted
// by descending priority. The ID correlates later feedback with the batch
// that produced it.
type Batch struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	Activity    string              `json:"activity"`
	Confidence  float64             `json:"confidence"`
	TimeContext timectx.Context     `json:"time_context"`
	Candidates  []Candidate         `json:"recommendations"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Types returns the recommendation types of the batch in priority order.
func (b *Batch) Types() []RecType {
	out := make([]RecType, len(b.Candidates))
	for i, c := range b.Candidates {
		out[i] = c.Type
	}
	return out
}

// Contains reports whether the batch includes a candidate of the given type.
func (b *Batch) Contains(t RecType) bool {
	for _, c := range b.Candidates {
		if c.Type == t {
			return true
		}
	}
	return false
}

// basePriority maps each recommendation type to its starting score before
// repetition decay and preference affinity are applied.
var basePriority = map[RecType]float64{
	RecStartConversation:  0.9,
	RecTellStory:          0.8,
	RecPlayMusic:          0.7,
	RecPlayClassicalMusic: 0.7,
	RecSuggestProgram:     0.6,
	RecSuggestDocumentary: 0.6,
	RecSuggestActivity:    0.5,
	RecSuggestNews:        0.5,
	RecSuggestOutdoor:     0.5,
	RecSuggestDrink:       0.4,
}

// defaultBasePriority is used for types absent from the base table.
const defaultBasePriority = 0.5

// defaultActivity is the rule key used when confidence falls below the
// engine threshold or when no rule matches the observed activity.
const defaultActivity = "default"
