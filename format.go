package pcmaudio

import (
	"github.com/simonhull/pcmaudio/internal/types"
)

// Format is an alias to types.Format.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatWAV     = types.FormatWAV
	FormatWave64  = types.FormatWave64
)

// Info is an alias to types.Info, the PCM stream parameters.
type Info = types.Info

// IndexEntry is an alias to types.IndexEntry, one contiguous run of sample
// frames mapped to its byte location.
type IndexEntry = types.IndexEntry
