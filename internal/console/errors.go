package console

import "errors"

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrTooManyArgs     = errors.New("too many arguments")
)
