package common

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh random identifier for a stored entity.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of an identifier issued by NewID.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// Now returns the current UTC time at millisecond precision, the finest every
// backend stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
