package cartridge

import "errors"

var (
	// ErrBadHeaderSize is returned when the image is too small to contain a
	// full header.
	ErrBadHeaderSize = errors.New("cartridge: image too small to contain a header")
	// ErrInvalidChecksum is returned when the header checksum byte does not
	// match the computed checksum.
	ErrInvalidChecksum = errors.New("cartridge: header checksum mismatch")
	// ErrUnsupportedMBC is returned for a cartridge type byte this module
	// does not implement an MBC for.
	ErrUnsupportedMBC = errors.New("cartridge: unsupported MBC type")
)
