package binmap

import "errors"

var (
	ErrBadSignature             = errors.New("binmap: bad signature")
	ErrMalformedVarint          = errors.New("binmap: malformed varint")
	ErrMalformedRunLength       = errors.New("binmap: malformed run-length string")
	ErrUnknownValueTag          = errors.New("binmap: unknown value tag")
	ErrIndexOutOfRange          = errors.New("binmap: lookup index out of range")
	ErrTableTooLarge            = errors.New("binmap: lookup table too large")
	ErrTooManyEntries           = errors.New("binmap: too many entries")
	ErrUnexpectedRootAttributes = errors.New("binmap: unexpected root attributes")
	ErrMaxDepthExceeded         = errors.New("binmap: max element depth exceeded")
	ErrUnexpectedEOF            = errors.New("binmap: unexpected end of buffer")
	ErrInvalidShell             = errors.New("binmap: invalid compression shell")
	ErrUnsupportedRune          = errors.New("binmap: rune not representable in text encoding")
	ErrLimitExceeded            = errors.New("binmap: limit exceeded")
	ErrInvalidDocument          = errors.New("binmap: invalid document")
)
