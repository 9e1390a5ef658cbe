package refdata

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by dataset loading and validation. Compare with
// errors.Is(); validation errors wrap these with detail.
const (
	// ErrSchemaVersion indicates a missing, unparseable, or unsupported
	// schema_version.
	ErrSchemaVersion = constError("unsupported dataset schema version")

	// ErrInvalidDataset indicates the dataset violates a structural
	// invariant (empty table, non-positive intensity, unordered bands...).
	ErrInvalidDataset = constError("invalid reference dataset")
)
