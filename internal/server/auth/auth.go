// Package auth defines the collaborator seams for request authentication
// and password hashing. Token issuance and verification are provided by the
// embedding application; this package only names the contract.
package auth

import "github.com/google/uuid"

// Authenticator resolves an opaque request token to a user id. The second
// return is false when the token does not identify a user.
type Authenticator interface {
	Authenticate(token string) (uuid.UUID, bool)
}

// Hasher derives and verifies password hashes.
type Hasher interface {
	Hash(password string) ([]byte, error)
	Compare(hash []byte, password string) bool
}
