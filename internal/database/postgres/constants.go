package postgres

// Queries for the planner_states table
const (
	queryLoadState = `SELECT document FROM planner_states WHERE profile = $1`

	querySaveState = `
		INSERT INTO planner_states (profile, document, penguins, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile) DO UPDATE
		SET document = EXCLUDED.document,
		    penguins = EXCLUDED.penguins,
		    updated_at = EXCLUDED.updated_at`

	queryDeleteState = `DELETE FROM planner_states WHERE profile = $1`
)

// Error Messages - State Operations
const (
	ErrMsgFailedToLoadState   = "failed to load state"
	ErrMsgFailedToSaveState   = "failed to save state"
	ErrMsgFailedToDeleteState = "failed to delete state"
	ErrMsgFailedToEncodeState = "failed to encode state"
)
