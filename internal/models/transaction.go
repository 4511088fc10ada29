package models

import (
	"github.com/google/uuid"
)

// Transaction is one dated action inside an account. Identity is the id
// alone. The account reference must exist at insert time; the store enforces
// this, not a live foreign key.
type Transaction struct {
	ID      uuid.UUID `json:"id"`
	Account uuid.UUID `json:"account"`
	Date    Date      `json:"date"`
	Action  TxnAction `json:"action"`
}
