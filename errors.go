package pcmaudio

import (
	"github.com/simonhull/pcmaudio/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types keeps the taxonomy in one place.
type OutOfBoundsError = types.OutOfBoundsError

// MappingError is an alias to types.MappingError.
type MappingError = types.MappingError

// FormatMismatchError is an alias to types.FormatMismatchError.
type FormatMismatchError = types.FormatMismatchError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// NoFormatMatchedError is an alias to types.NoFormatMatchedError.
type NoFormatMatchedError = types.NoFormatMatchedError

// ProbeFailure is an alias to types.ProbeFailure.
type ProbeFailure = types.ProbeFailure
