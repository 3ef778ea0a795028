// Package decision implements the recommendation engine at the heart of
// the assistant.
//
// The engine turns a single activity observation (activity label plus
// detection confidence) into a ranked batch of recommendations. Rule
// tables map activities to candidate types; time-of-day adjustments and
// profile personalization reshape the candidate list; a scoring pass
// combines base priorities, repetition decay over recent batches, and
// activity affinity bonuses. Batches carry stable IDs so user feedback
// can be correlated after the fact.
package decision
