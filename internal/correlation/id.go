package correlation

import "github.com/google/uuid"

// NewID returns a random (version 4, RFC 4122 variant) UUID in its canonical
// 36 character form.
func NewID() string {
	return uuid.NewString()
}
