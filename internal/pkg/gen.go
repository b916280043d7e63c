package pkg

import "github.com/google/uuid"

// GenerateGameID - generates a new unique game session id.
func GenerateGameID() string {
	return uuid.NewString()
}
