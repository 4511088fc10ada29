// Package common defines sentinel errors shared across the ledger layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrForeignKey = errors.New("foreign key violation")
	ErrStore      = errors.New("store failure")

	// Parsing / serialization errors.
	ErrParse = errors.New("parse error")

	// Service-level errors.
	ErrReference  = errors.New("referenced entity does not exist")
	ErrValidation = errors.New("validation error")
	ErrPolicy     = errors.New("policy violation")
	ErrDenied     = errors.New("authorization denied")

	// Login errors.
	ErrBadCredentials = errors.New("incorrect username or password")
	ErrLoginThrottled = errors.New("too many login attempts")
)
