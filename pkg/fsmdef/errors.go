package fsmdef

import "errors"

var (
	ErrParsingCancelled  = errors.New("definition parsing cancelled")
	ErrFailedToParse     = errors.New("failed to parse definition")
	ErrInvalidDocument   = errors.New("invalid definition document")
	ErrUnsupportedFormat = errors.New("unsupported definition format")
	ErrFailedToReadFile  = errors.New("failed to read definition file")
	ErrFailedToEncode    = errors.New("failed to encode definition")
)
