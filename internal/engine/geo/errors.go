package geo

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidLocation indicates the destination postcode could not be
// geocoded. This is the engine's only hard failure; there is no default
// destination, so callers surface it as a correctable input error.
const ErrInvalidLocation = constError("destination postcode cannot be geocoded")
