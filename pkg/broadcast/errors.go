package broadcast

import "errors"

// ErrInvalidBuffer is returned by NewFromConfig for a negative buffer size.
var ErrInvalidBuffer = errors.New("broadcast: buffer size must not be negative")
