// Package uuid generates names for temporary profiles
package uuid

import (
	"fmt"

	google_uuid "github.com/google/uuid"
)

// MustUUID returns a random UUID in its string form
func MustUUID() string {
	return google_uuid.New().String()
}

// TempName returns prefix-<uuid><extension>
func TempName(prefix, extension string) string {
	return fmt.Sprintf("%s-%s%s", prefix, MustUUID(), extension)
}
