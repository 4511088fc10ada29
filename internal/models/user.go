package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity anchor. Password holds the opaque verifier bytes
// produced by the password collaborator; the ledger core never hashes. The
// login-throttle counter and timestamp are persisted alongside the row but
// never serialized.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password []byte    `json:"password,omitempty"`

	Attempts int       `json:"-"`
	LoginAt  time.Time `json:"-"` // zero when no attempt was ever recorded
}
