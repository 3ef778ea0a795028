package decision

// Scoring constants. Priority starts from the base table, loses decayStep
// per appearance in the recent batches, then gains an affinity bonus when
// the recommendation fits the observed activity.
const (
	decayStep          = 0.1
	decayFloor         = 0.1
	recentBatchWindow  = 3
	mealMusicBonus     = 0.2
	idleEngagementBonus = 0.3
)

// scorePriority computes the final priority for a recommendation type.
// recent holds the most recent batches, newest first.
func scorePriority(t RecType, activity string, recent []*Batch) float64 {
	score, ok := basePriority[t]
	if !ok {
		score = defaultBasePriority
	}

	repeats := 0
	for _, b := range recent {
		if b.Contains(t) {
			repeats++
		}
	}
	if repeats > 0 {
		decayed := score - decayStep*float64(repeats)
		if decayed < decayFloor {
			decayed = decayFloor
		}
		score = decayed
	}

	score += affinityBonus(t, activity)

	return clamp01(score)
}

// affinityBonus rewards recommendations that fit the observed activity.
func affinityBonus(t RecType, activity string) float64 {
	switch activity {
	case "manger":
		if t == RecPlayMusic || t == RecPlayClassicalMusic {
			return mealMusicBonus
		}
	case "inactif":
		if t == RecTellStory || t == RecStartConversation {
			return idleEngagementBonus
		}
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
