package rewrite

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrReadTarget   = errors.New("read target failed")
	ErrDecodeTarget = errors.New("target is not valid UTF-8 text")
	ErrWriteTarget  = errors.New("write target failed")
	ErrCanceled     = errors.New("rewrite canceled before write")
)
