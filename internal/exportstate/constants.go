package exportstate

// QueryParam is the URL query parameter carrying an exported state
const QueryParam = "state"

// MaxDecodedSize caps the inflated document size of an imported token
const MaxDecodedSize = 1 << 20

const compressionLevel = 9

// Error messages
const (
	ErrMsgEmptyToken   = "empty state token"
	ErrMsgInvalidURL   = "invalid state URL"
	ErrMsgTooLarge     = "state document too large"
	ErrMsgSchemaFailed = "state document failed validation"
)
