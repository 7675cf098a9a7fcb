package domain

import "github.com/google/uuid"

// generateID creates a new unique identifier for a session record.
func generateID() string {
	return uuid.New().String()
}
