// Package storage is the device-local persistent store: a small key-value
// table for session state plus a recent-searches table, both in a single
// SQLite database.
package storage

// Durable session keys. These three are the entire session surface; the
// token and user are always written together or cleared together.
const (
	KeyUserToken         = "userToken"
	KeyUserData          = "userData"
	KeyHasSeenOnboarding = "hasSeenOnboarding"

	// KeyInstallID identifies this installation to the backend. Generated
	// once on first run and never rotated.
	KeyInstallID = "installID"
)
