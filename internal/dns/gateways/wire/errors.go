package wire

import "errors"

var (
	// ErrTruncatedHeader is returned when fewer than 12 bytes are available for a header.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrMalformedName is returned when a label length byte is missing, out of
	// range, or overruns the buffer.
	ErrMalformedName = errors.New("malformed domain name")

	// ErrLabelTooLong is returned when encoding a label longer than 63 bytes.
	ErrLabelTooLong = errors.New("label too long")

	// ErrEmptyLabel is returned when encoding a name with an empty interior label, e.g. "a..b".
	ErrEmptyLabel = errors.New("empty label")

	// ErrTruncatedQuestion is returned when the header declares more questions
	// than the message holds.
	ErrTruncatedQuestion = errors.New("truncated question")

	// ErrTruncatedRecord is returned when a resource record's fixed fields or
	// rdata run past the end of the message.
	ErrTruncatedRecord = errors.New("truncated resource record")

	// ErrCountMismatch is returned when a header count disagrees with the section it describes.
	ErrCountMismatch = errors.New("section count mismatch")

	// ErrRDataLength is returned when rdata does not have the size its type requires.
	ErrRDataLength = errors.New("rdata length does not match record type")

	// ErrIDMismatch is returned when a response does not carry the expected ID.
	ErrIDMismatch = errors.New("response ID mismatch")
)
