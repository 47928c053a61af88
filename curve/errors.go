package curve

import "errors"

// ErrBadEncoding is surfaced whenever a point or scalar fails to decode
// from its canonical byte encoding (spec.md §7 BadProofEncoding).
var ErrBadEncoding = errors.New("curve: bad proof encoding")

// ErrArithmetic is surfaced by field inversion on a zero divisor
// (spec.md §7 Arithmetic).
var ErrArithmetic = errors.New("curve: arithmetic error")
