package utils

import "github.com/google/uuid"

// UUIDGenerator produces trace identifiers for incoming requests.
// It prefers UUIDv7 so that ids sort by creation time in log storage.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random UUIDv4
// when the monotonic source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
