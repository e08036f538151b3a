// Package registry manages container parsers and the order the provider
// probes them in.
package registry

import (
	"github.com/simonhull/pcmaudio/internal/filemap"
	"github.com/simonhull/pcmaudio/internal/types"
)

// Parser is the interface container parsers implement.
type Parser interface {
	// Parse validates the container signature, walks its chunks through the
	// accessor, and returns the stream parameters and sample index.
	//
	// A signature mismatch is reported as *types.FormatMismatchError; any
	// other error means the file is of this container type but unusable.
	Parse(acc *filemap.Accessor, path string) (types.Info, types.Index, error)
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]Parser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser Parser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) Parser {
	return parsers[format]
}

// ProbeOrder returns the candidate formats in probe priority order. The
// order is load-bearing: a corrupt file of an earlier format must report its
// own corruption rather than fall through to a later candidate.
func ProbeOrder() []types.Format {
	return []types.Format{types.FormatWAV, types.FormatWave64}
}
