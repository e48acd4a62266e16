// Package errs defines the sentinel errors returned by the nbt packages.
//
// Errors are wrapped with context using fmt.Errorf and %w, so callers should
// match them with errors.Is rather than comparing values directly:
//
//	doc, err := codec.Unmarshal(data)
//	if errors.Is(err, errs.ErrInvalidType) {
//	    // malformed type code
//	}
package errs

import "errors"

var (
	// ErrInvalidType is returned when a type code outside 0x00..0x0C is read,
	// when a non-empty list declares the End element type, or when a root
	// that is not a compound is written.
	ErrInvalidType = errors.New("nbt: invalid tag type")

	// ErrInvalidUTF8 is returned when a string payload or a compound entry
	// name is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("nbt: invalid UTF-8")

	// ErrIO marks a failure of the underlying byte source or sink, including
	// an unexpected end of stream. The original I/O error is wrapped as well.
	ErrIO = errors.New("nbt: I/O error")

	// ErrInvalidLength is returned for negative declared lengths and for
	// lengths above the configured ceiling.
	ErrInvalidLength = errors.New("nbt: invalid length")

	// ErrStringTooLong is returned when a string or name exceeds 65535 encoded bytes.
	ErrStringTooLong = errors.New("nbt: string too long")

	// ErrListTypeMismatch is returned when a list element does not match the
	// declared element type.
	ErrListTypeMismatch = errors.New("nbt: list element type mismatch")

	// ErrMaxDepthExceeded is returned when nesting exceeds the configured limit.
	ErrMaxDepthExceeded = errors.New("nbt: maximum nesting depth exceeded")

	// ErrNilTag is returned when a nil tag is found inside a tree.
	ErrNilTag = errors.New("nbt: nil tag")

	// ErrUnsupportedCompression is returned for unknown compression types.
	ErrUnsupportedCompression = errors.New("nbt: unsupported compression type")
)
