package bios

import "errors"

var (
	ErrUnknownAttribute = errors.New("bios: unknown attribute")
	ErrWrongKind        = errors.New("bios: attribute is not of the requested kind")
	ErrInvalidValue     = errors.New("bios: value not in possible set")
	ErrEmptyRegistry    = errors.New("bios: no attributes loaded")
)
