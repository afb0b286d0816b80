package planner

// Error messages
const (
	ErrMsgInvalidBudget = "invalid budget"
	ErrMsgNoHabitats    = "no habitats unlocked"
)
