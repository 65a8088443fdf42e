// errors.go - Fehlerwerte des nd-Pakets
package nd

import "errors"

// Sentinel errors returned by constructors and copy routines. Callers
// match them with errors.Is; messages carry the specific context.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrTooBig          = errors.New("too many dimensions")
	ErrOverflow        = errors.New("dimensions overflow")
	ErrOutOfMemory     = errors.New("out of memory")
	ErrIO              = errors.New("i/o error")
	ErrNotWriteable    = errors.New("array is not writeable")
	ErrInternal        = errors.New("internal error")
)
