package habitat

// Error messages
const (
	ErrMsgUnknownHabitat = "unknown habitat"
	ErrMsgInvalidBasis   = "invalid habitat basis"
	ErrMsgInvalidInput   = "invalid habitat input"
)

// Field names used in FieldErrors and JSON documents
const (
	FieldLevel      = "level"
	FieldGold       = "gold"
	FieldCost       = "cost"
	FieldHearts     = "hearts"
	FieldMultiplier = "multiplier"
)

// Fields lists the basis fields in display order
var Fields = []string{FieldLevel, FieldGold, FieldCost, FieldHearts, FieldMultiplier}
