// Package identity generates record identifiers. IDs are random UUIDs:
// opaque, order-independent and statistically unique, so no collision check
// is performed anywhere.
package identity

import "github.com/google/uuid"

// NewID returns a new globally-unique record identifier.
func NewID() string {
	return uuid.NewString()
}
