// Package database manages the SQLite connection backing the profile
// store: pragma configuration, a single-writer connection pool, embedded
// schema migrations, and health checks.
package database
