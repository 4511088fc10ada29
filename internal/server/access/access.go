// Package access holds the ownership checks applied before any account,
// transaction or asset mutation. Deny is the default: an unresolved record
// or a missing principal never authorizes anything.
package access

import (
	"github.com/google/uuid"

	"github.com/portobook/portobook/internal/models"
)

// Authorize reports whether principal owns the account.
func Authorize(principal uuid.UUID, account *models.Account) bool {
	if principal == uuid.Nil || account == nil {
		return false
	}
	return account.Owner == principal
}

// AuthorizeAsset reports whether principal may mutate the asset. Global
// assets (nil owner) are readable by everyone but mutable by no one here;
// curation of global reference data sits outside user requests.
func AuthorizeAsset(principal uuid.UUID, asset *models.Asset) bool {
	if principal == uuid.Nil || asset == nil || asset.Owner == nil {
		return false
	}
	return *asset.Owner == principal
}

// Readable reports whether principal may read the asset: global assets are
// visible to every user, owned assets only to their owner.
func Readable(principal uuid.UUID, asset *models.Asset) bool {
	if asset == nil {
		return false
	}
	if asset.Owner == nil {
		return true
	}
	return principal != uuid.Nil && *asset.Owner == principal
}
