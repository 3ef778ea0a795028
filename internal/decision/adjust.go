package decision

import "github.com/angel-assistant/angel-core/internal/timectx"

// adjustRule conditionally removes or appends a recommendation type based
// on the time context and the observed activity. Rules are idempotent:
// removals are no-ops when the type is absent and additions are skipped
// when the type is already present.
type adjustRule struct {
	when   func(tc timectx.Context, activity string) bool
	remove RecType
	add    RecType
}

// adjustRules run in order after rule-table lookup and before
// personalization. Order matters only for readability; the rules touch
// disjoint types.
var adjustRules = []adjustRule{
	{
		// Music late at night is disruptive unless a meal is in progress.
		when: func(tc timectx.Context, activity string) bool {
			return tc.TimeOfDay == timectx.Night && activity != "manger"
		},
		remove: RecPlayMusic,
	},
	{
		when: func(tc timectx.Context, activity string) bool {
			return tc.TimeOfDay == timectx.Night && activity == "inactif"
		},
		add: RecTellStory,
	},
	{
		when: func(tc timectx.Context, activity string) bool {
			return tc.TimeOfDay == timectx.Morning && activity == "inactif"
		},
		add: RecSuggestNews,
	},
	{
		when: func(tc timectx.Context, activity string) bool {
			return tc.IsWeekend && activity == "inactif"
		},
		add: RecSuggestOutdoor,
	},
}

// adjustForContext applies the time-of-day adjustment rules to the
// candidate type list and returns the result.
func adjustForContext(types []RecType, tc timectx.Context, activity string) []RecType {
	out := types
	for _, rule := range adjustRules {
		if !rule.when(tc, activity) {
			continue
		}
		if rule.remove != "" {
			out = removeType(out, rule.remove)
		}
		if rule.add != "" && !containsType(out, rule.add) {
			out = append(out, rule.add)
		}
	}
	return out
}

func removeType(types []RecType, t RecType) []RecType {
	out := types[:0]
	for _, cur := range types {
		if cur != t {
			out = append(out, cur)
		}
	}
	return out
}

func containsType(types []RecType, t RecType) bool {
	for _, cur := range types {
		if cur == t {
			return true
		}
	}
	return false
}
