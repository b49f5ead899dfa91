package types

import "errors"

// ErrOutOfBounds is the class of every fault raised when an address,
// stack slot or key index falls outside the machine's valid range.
var ErrOutOfBounds = errors.New("out of bounds")
