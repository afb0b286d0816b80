package scale

// Error messages
const (
	ErrMsgInvalidNotation   = "invalid short notation"
	ErrMsgInvalidMultiplier = "invalid multiplier"
	ErrMsgFactorNotFound    = "factor not found"
)

// MinMultiplierPercent is the smallest accepted multiplier input (100%)
const MinMultiplierPercent = 100

// decimals used for every formatted value
const formatDecimals = 2
