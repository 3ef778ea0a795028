// Package profile manages user profiles: content preferences, activity
// history, and feedback records.
//
// The Store interface abstracts persistence; SQLiteStore is the durable
// implementation and StaticStore serves deterministic defaults when no
// database is configured. Preferences influence recommendation
// personalization and priority scoring in the decision package.
package profile
