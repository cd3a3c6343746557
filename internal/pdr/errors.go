package pdr

import "errors"

var (
	ErrTruncated      = errors.New("pdr: truncated payload")
	ErrNotFound       = errors.New("pdr: record not found")
	ErrReservedHandle = errors.New("pdr: handle 0 is reserved")
	ErrUnknownPdrType = errors.New("pdr: unknown pdrType")
)
