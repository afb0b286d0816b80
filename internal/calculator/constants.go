package calculator

// Log messages
const (
	LogMsgStateLoadFailed    = "Failed to load stored state, starting fresh"
	LogMsgStatePersistFailed = "Failed to persist state, keeping in-memory copy"
	LogMsgTransitionApplied  = "State transition applied"
	LogMsgStateImported      = "State imported"
	LogMsgImportedStateStale = "Imported state is older than stored state, keeping stored state"
)

// Field names for update validation
const (
	FieldHabitat = "habitat"
	FieldHearts  = "hearts"
	FieldGold    = "gold"
	FieldCost    = "cost"
	FieldBudget  = "budget"
)

// Operation names used in logs and metrics
const (
	OpUnlock          = "unlock"
	OpSetInput        = "input"
	OpSave            = "save"
	OpReset           = "reset"
	OpStartEdit       = "edit"
	OpSuggestUpgrades = "upgrade"
	OpSuggestEvolve   = "evolve"
	OpSuggestResearch = "research"
	OpCancel          = "cancel"
	OpCommit          = "commit"
	OpAddPenguin      = "penguin"
	OpImport          = "import"
)

// Metric source labels
const (
	SourceStore  = "store"
	SourceImport = "import"
)
