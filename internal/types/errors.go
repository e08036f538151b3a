package types

import (
	"fmt"
	"strings"
)

// OutOfBoundsError is returned when a requested range extends past the end
// of the addressable space: file bytes for the accessor, sample frames for
// the range reader.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int64
	Limit  int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Limit {
		return fmt.Sprintf("%s: offset %d out of bounds (limit: %d) while reading %s",
			e.Path, e.Offset, e.Limit, e.What)
	}
	return fmt.Sprintf("%s: reading %d at offset %d would exceed limit %d while reading %s",
		e.Path, e.Length, e.Offset, e.Limit, e.What)
}

// MappingError is returned when the OS cannot establish a memory mapping
// over the requested file range.
type MappingError struct {
	Path   string
	Offset int64
	Length int64
	Err    error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: failed mapping %d bytes at offset %d: %v",
		e.Path, e.Length, e.Offset, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// FormatMismatchError is returned by a parser whose container signature did
// not match. It is the only recoverable parse error: provider selection
// swallows it and tries the next candidate format.
type FormatMismatchError struct {
	Path   string
	Format Format
	Reason string
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("%s: not a %s file: %s", e.Path, e.Format, e.Reason)
}

// CorruptedFileError is returned when the container signature matched but the
// chunk structure violates the format rules (bad ordering, duplicate fmt
// chunks, truncation).
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// UnsupportedFormatError is returned when the file is structurally valid but
// uses an encoding this reader does not implement (non-PCM compression,
// IEEE float samples).
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// ProbeFailure records one candidate format that declined a file during
// provider selection.
type ProbeFailure struct {
	Format Format
	Err    error
}

// NoFormatMatchedError is returned when every candidate parser reported a
// signature mismatch. It aggregates the per-format diagnostics so the caller
// sees why each candidate declined.
type NoFormatMatchedError struct {
	Path     string
	Attempts []ProbeFailure
}

func (e *NoFormatMatchedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: not a supported audio file", e.Path)
	for _, a := range e.Attempts {
		fmt.Fprintf(&sb, "\n%s: %v", a.Format, a.Err)
	}
	return sb.String()
}

// Unwrap returns the per-format probe errors for errors.Is/As inspection.
func (e *NoFormatMatchedError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}
