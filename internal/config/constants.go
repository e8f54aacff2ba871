package config

import "time"

const (
	// RequestTimeout bounds a single AI provider round trip.
	RequestTimeout = 90 * time.Second

	// HistoryWindow is how many stored messages are replayed to the
	// provider with each new user turn.
	HistoryWindow = 10

	// Snapshot limits: how much recent pregnancy data goes into the
	// system prompt.
	SnapshotVisits     = 5
	SnapshotSymptoms   = 5
	SnapshotMilestones = 3

	// ChatPageSize is the default page size for the message list endpoint.
	ChatPageSize = 50
)
