// Package acserr defines the closed set of error kinds shared by the
// acsbin, atlas, ingest, manifest and player packages.
package acserr

import "fmt"

// Kind categorizes a failure the way callers need to dispatch on, per
// the error handling design: parsing/decoding problems, encoding
// problems, filesystem problems, and caller-input problems are kept
// distinct so a host application can decide what's retryable.
type Kind int

const (
	// EmptyFrames means no frames were produced (ingest) or present
	// (player construction).
	EmptyFrames Kind = iota
	// UnsupportedPlatform means a codec capability the host environment
	// needs isn't available.
	UnsupportedPlatform
	// DecodeFailed means the input container or compressed payload is
	// structurally invalid.
	DecodeFailed
	// EncodeFailed means producing the PNG or JSON output failed.
	EncodeFailed
	// IoFailed means a filesystem read or write failed.
	IoFailed
	// InvalidInput means a caller-supplied value was invalid: an
	// unsupported signature, an unknown animation name, invalid frame
	// dimensions, or an atlas that exceeds the configured maximum size.
	InvalidInput
)

func (k Kind) String() string {
	switch k {
	case EmptyFrames:
		return "EmptyFrames"
	case UnsupportedPlatform:
		return "UnsupportedPlatform"
	case DecodeFailed:
		return "DecodeFailed"
	case EncodeFailed:
		return "EncodeFailed"
	case IoFailed:
		return "IoFailed"
	case InvalidInput:
		return "InvalidInput"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every package in this
// module. Detail is a human-readable description; Cause, if non-nil,
// is the underlying error (e.g. an *os.PathError).
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Cause }

func mk(kind Kind, detail string) *Error { return &Error{Kind: kind, Detail: detail} }

func wrap(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

// EmptyFramesErr reports that no frames were produced or present.
func EmptyFramesErr(detail string) *Error { return mk(EmptyFrames, detail) }

// UnsupportedPlatformErr reports a missing host codec capability.
func UnsupportedPlatformErr(detail string) *Error { return mk(UnsupportedPlatform, detail) }

// DecodeFailedf reports a structural input error, formatted.
func DecodeFailedf(format string, args ...any) *Error {
	return mk(DecodeFailed, fmt.Sprintf(format, args...))
}

// DecodeFailedWrap reports a structural input error wrapping cause.
func DecodeFailedWrap(detail string, cause error) *Error {
	return wrap(DecodeFailed, detail, cause)
}

// EncodeFailedWrap reports a PNG/JSON encoding failure wrapping cause.
func EncodeFailedWrap(detail string, cause error) *Error {
	return wrap(EncodeFailed, detail, cause)
}

// IoFailedWrap reports a filesystem failure wrapping cause.
func IoFailedWrap(detail string, cause error) *Error {
	return wrap(IoFailed, detail, cause)
}

// InvalidInputf reports a caller-input error, formatted.
func InvalidInputf(format string, args ...any) *Error {
	return mk(InvalidInput, fmt.Sprintf(format, args...))
}

// UnexpectedEndOfData reports a byte-reader operation that would have
// crossed the end of its range.
type UnexpectedEndOfData struct {
	BytesRequested       int
	OffsetFromRangeStart int
}

func (e *UnexpectedEndOfData) Error() string {
	return fmt.Sprintf("DecodeFailed: unexpected end of data: requested %d bytes at offset %d",
		e.BytesRequested, e.OffsetFromRangeStart)
}

// InvalidRange reports an attempt to construct a sub-reader over an
// out-of-bounds or negative range.
type InvalidRange struct {
	RangeOffset int
	RangeLength int
	BlobLength  int
}

func (e *InvalidRange) Error() string {
	return fmt.Sprintf("InvalidInput: invalid range offset=%d length=%d blobLength=%d",
		e.RangeOffset, e.RangeLength, e.BlobLength)
}

// UnsupportedSignature reports a container whose magic number does
// not match the Agent 2.0 signature.
type UnsupportedSignature struct {
	Value uint32
}

func (e *UnsupportedSignature) Error() string {
	return fmt.Sprintf("InvalidInput: unsupported signature %#08x", e.Value)
}

// UnknownAnimation reports a play() call or construction-time initial
// clip name that does not exist in the manifest.
type UnknownAnimation struct {
	Name string
}

func (e *UnknownAnimation) Error() string {
	return fmt.Sprintf("InvalidInput: unknown animation %q", e.Name)
}

// ImageDecodeFailed reports that the bit-stream decompressor could
// not produce the requested number of output bytes.
type ImageDecodeFailed struct {
	ImageIndex int
}

func (e *ImageDecodeFailed) Error() string {
	return fmt.Sprintf("DecodeFailed: image %d failed to decompress", e.ImageIndex)
}

// AtlasTooLarge reports that the computed atlas dimensions exceed the
// configured maximum.
type AtlasTooLarge struct {
	Width, Height, MaxDimension int
}

func (e *AtlasTooLarge) Error() string {
	return fmt.Sprintf("InvalidInput: atlas %dx%d exceeds max dimension %d", e.Width, e.Height, e.MaxDimension)
}
