// Package validation applies the bookkeeping rules checked before a record
// is written: structural rules on accounts and registrations, and the
// registered-account contribution policy on transactions.
package validation

import (
	"fmt"

	"github.com/portobook/portobook/internal/common"
	"github.com/portobook/portobook/internal/models"
)

const (
	minNameLen     = 4
	minUsernameLen = 6
	minPasswordLen = 8
)

// CheckTransaction verifies a transaction against its resolved account.
// Registered accounts (TFSA, RRSP, FHSA) only accept deposits and
// withdrawals denominated in the home currency; tax authorities track
// contribution room in it.
func CheckTransaction(home models.AssetID, account *models.Account, txn *models.Transaction) error {
	if account == nil {
		return fmt.Errorf("%w: no account exists", common.ErrReference)
	}
	if txn.Action.Action == nil {
		return fmt.Errorf("%w: transaction has no action", common.ErrValidation)
	}
	if !account.Kind.Registered() {
		return nil
	}

	kind := txn.Action.Kind()
	if kind != "Deposit" && kind != "Withdrawal" {
		return nil
	}
	for _, leg := range txn.Action.Legs() {
		if leg.Role == models.RoleValue && leg.Asset != home {
			return fmt.Errorf("%w: %s into %s account must be in %s, got %s",
				common.ErrPolicy, kind, account.Kind, home, leg.Asset)
		}
	}
	return nil
}

// CheckAccount verifies the structural rules on an account record.
func CheckAccount(account *models.Account) error {
	if len(account.Name) < minNameLen {
		return fmt.Errorf("%w: account name must be at least %d characters", common.ErrValidation, minNameLen)
	}
	if len(account.Alias) < minNameLen {
		return fmt.Errorf("%w: account alias must be at least %d characters", common.ErrValidation, minNameLen)
	}
	if !account.Kind.Valid() {
		return fmt.Errorf("%w: unknown account kind %q", common.ErrValidation, string(account.Kind))
	}
	return nil
}

// CheckUsername verifies a username candidate.
func CheckUsername(username string) error {
	if len(username) < minUsernameLen {
		return fmt.Errorf("%w: username must be at least %d characters", common.ErrValidation, minUsernameLen)
	}
	return nil
}

// CheckPassword verifies a plaintext password candidate before hashing.
func CheckPassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLen)
	}
	return nil
}

// CheckRegistration verifies the credentials offered for a new user.
func CheckRegistration(username, password string) error {
	if err := CheckUsername(username); err != nil {
		return err
	}
	return CheckPassword(password)
}
