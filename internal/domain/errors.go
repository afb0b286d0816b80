package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// State errors
	ErrMsgNotConfigured     = "habitats are not configured yet"
	ErrMsgAlreadyConfigured = "habitats are already configured"
	ErrMsgNoPendingChange   = "no pending change"
	ErrMsgChangeMismatch    = "pending change is of a different type"
	ErrMsgHabitatLocked     = "habitat is locked"
	ErrMsgNothingToSave     = "no habitats entered"

	// Persistence errors
	ErrMsgCorruptState   = "stored state is corrupt"

	ErrMsgChangeWithoutBasis   = "pending change without configured habitats"
	ErrMsgUpgradeWithoutPlan   = "pending upgrade has no plan"
	ErrMsgPlanHabitatsMismatch = "upgrade plan habitats differ from the basis"
	ErrMsgDatabaseError  = "database error"
	ErrMsgInvalidProfile = "invalid profile name"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotConfigured     = errors.New(ErrMsgNotConfigured)
	ErrAlreadyConfigured = errors.New(ErrMsgAlreadyConfigured)
	ErrNoPendingChange   = errors.New(ErrMsgNoPendingChange)
	ErrChangeMismatch    = errors.New(ErrMsgChangeMismatch)
	ErrHabitatLocked     = errors.New(ErrMsgHabitatLocked)
	ErrNothingToSave     = errors.New(ErrMsgNothingToSave)

	ErrCorruptState   = errors.New(ErrMsgCorruptState)
	ErrDatabaseError  = errors.New(ErrMsgDatabaseError)
	ErrInvalidProfile = errors.New(ErrMsgInvalidProfile)
)
