package pcmaudio

import "github.com/simonhull/pcmaudio/internal/filemap"

// Option configures behavior when opening audio files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	p, err := pcmaudio.Open("take.wav",
//	    pcmaudio.WithWindowedMapping(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	windowed  bool  // Force the bounded sliding-window mapping policy
	maxWindow int64 // Target window length in bytes (0 = 16 MiB default)
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{}
}

func (o *openOptions) policy() filemap.Policy {
	policy := filemap.DefaultPolicy()
	if o.windowed {
		policy.Windowed = true
	}
	if o.maxWindow > 0 {
		policy.Windowed = true
		policy.Floor = o.maxWindow
	}
	return policy
}

// WithWindowedMapping maps the file through a bounded sliding window instead
// of one whole-file mapping.
//
// On 32-bit address spaces this is already the default. On 64-bit hosts the
// whole file is normally mapped once; use this option to bound mapped memory
// when working with many providers or very large files.
//
// The window starts 1 MiB-aligned at or below the requested offset and spans
// at least 16 MiB, so runs of nearby reads are served without remapping.
func WithWindowedMapping() Option {
	return func(o *openOptions) {
		o.windowed = true
	}
}

// WithMaxWindow sets the sliding window length in bytes and implies
// WithWindowedMapping.
//
// The value is rounded up to 1 MiB alignment. Requests longer than the
// window still succeed; the window grows to cover them.
//
// Example:
//
//	// Keep mapped memory around 4 MiB
//	p, err := pcmaudio.Open("take.wav", pcmaudio.WithMaxWindow(4<<20))
func WithMaxWindow(bytes int64) Option {
	return func(o *openOptions) {
		o.maxWindow = bytes
	}
}
