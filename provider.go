package pcmaudio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/pcmaudio/internal/filemap"
	"github.com/simonhull/pcmaudio/internal/registry"
	"github.com/simonhull/pcmaudio/internal/types"

	// Register container parsers.
	_ "github.com/simonhull/pcmaudio/internal/w64"
	_ "github.com/simonhull/pcmaudio/internal/wav"
)

// Provider is an opened PCM audio file with random access to its sample
// frames.
//
// Opening a file parses the container once and builds an index mapping frame
// positions to byte offsets; the audio itself is never loaded whole. Reads go
// through a sliding memory-mapped window over the file.
//
// A Provider is safe for use from one goroutine at a time; ReadFrames calls
// are serialized internally. Independent Providers over the same file are
// safe concurrently, since each owns its file handle and window.
//
// Always call Close() when done to release the mapping and file handle:
//
//	p, err := pcmaudio.Open("take.wav")
//	if err != nil {
//		return err
//	}
//	defer p.Close()
type Provider struct {
	// Path to the audio file
	Path string

	// Detected container format (WAV or Wave64)
	Format Format

	// File size in bytes
	Size int64

	// Internal state (unexported)
	info  types.Info
	index types.Index
	acc   *filemap.Accessor

	// Guards the accessor's single mutable window.
	mu sync.Mutex
}

// Open opens a RIFF-WAV or Wave64 file and indexes its PCM data.
//
// Candidate formats are probed in a fixed order: RIFF-WAV first, then
// Wave64. A parser whose signature does not match is skipped; any other
// parser failure (corrupt structure, non-PCM encoding) is returned
// immediately, since the file is known to be of that container type. When no
// signature matches, Open fails with *NoFormatMatchedError carrying the
// per-format diagnostics.
//
// Options can be provided to customize mapping behavior:
//
//	p, err := pcmaudio.Open("session.w64",
//	    pcmaudio.WithWindowedMapping(),
//	)
func Open(path string, opts ...Option) (*Provider, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	acc, err := filemap.Open(path, options.policy())
	if err != nil {
		return nil, err
	}

	p, err := openAccessor(acc, path)
	if err != nil {
		acc.Close()
		return nil, err
	}
	return p, nil
}

// openAccessor probes each candidate parser in priority order.
func openAccessor(acc *filemap.Accessor, path string) (*Provider, error) {
	var attempts []types.ProbeFailure

	for _, format := range registry.ProbeOrder() {
		parser := registry.Get(format)
		if parser == nil {
			continue
		}

		info, index, err := parser.Parse(acc, path)
		if err != nil {
			var mismatch *types.FormatMismatchError
			if errors.As(err, &mismatch) {
				attempts = append(attempts, types.ProbeFailure{Format: format, Err: err})
				continue
			}
			// The signature matched, so the file is of this container
			// type; report its own failure rather than probing on.
			return nil, err
		}

		if err := index.Validate(info.TotalFrames); err != nil {
			return nil, fmt.Errorf("%s: sample index: %w", path, err)
		}

		return &Provider{
			Path:   path,
			Format: format,
			Size:   acc.Size(),
			info:   info,
			index:  index,
			acc:    acc,
		}, nil
	}

	return nil, &types.NoFormatMatchedError{Path: path, Attempts: attempts}
}

// OpenContext opens a file with context support for cancellation.
//
// This is a thin wrapper around Open() that checks the context before
// starting; parsing itself is a single synchronous pass.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple audio files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. Each provider
// owns its own file handle and window, so parallel opening is safe.
//
// If any file fails to open, all successfully opened providers are closed
// and an error is returned.
func OpenMany(ctx context.Context, paths ...string) ([]*Provider, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Provider, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			p, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, p := range results {
			if p != nil {
				p.Close()
			}
		}
		return nil, err
	}

	return results, nil
}

// SampleRate returns the sample rate in Hz.
func (p *Provider) SampleRate() int { return p.info.SampleRate }

// Channels returns the interleaved channel count.
func (p *Provider) Channels() int { return p.info.Channels }

// BytesPerSample returns the per-channel sample width in bytes.
func (p *Provider) BytesPerSample() int { return p.info.BytesPerSample }

// BytesPerFrame returns the byte width of one interleaved sample frame.
func (p *Provider) BytesPerFrame() int { return p.info.BytesPerFrame() }

// FloatSamples reports whether samples are IEEE float. Always false: float
// PCM files are rejected at open time.
func (p *Provider) FloatSamples() bool { return p.info.FloatSamples }

// TotalFrames returns the number of sample frames across all data chunks.
func (p *Provider) TotalFrames() int64 { return p.info.TotalFrames }

// Duration returns the total playback time.
func (p *Provider) Duration() time.Duration { return p.info.Duration() }

// Info returns the stream parameters.
func (p *Provider) Info() Info { return p.info }

// Index returns a copy of the sample index, one entry per data chunk.
func (p *Provider) Index() []IndexEntry {
	out := make([]IndexEntry, len(p.index))
	copy(out, p.index)
	return out
}

// ReadFrames copies count interleaved sample frames, starting at logical
// frame start, into dst.
//
// The requested range must lie within [0, TotalFrames); otherwise ReadFrames
// fails with *OutOfBoundsError before copying anything. dst must have room
// for count*BytesPerFrame() bytes or ReadFrames fails with
// io.ErrShortBuffer. Reads are idempotent: re-reading a range yields
// byte-identical results.
func (p *Provider) ReadFrames(dst []byte, start, count int64) error {
	frameBytes := int64(p.info.BytesPerFrame())

	if start < 0 || count < 0 || start+count > p.info.TotalFrames {
		return &types.OutOfBoundsError{
			Path:   p.Path,
			What:   "sample frames",
			Offset: start,
			Length: count,
			Limit:  p.info.TotalFrames,
		}
	}
	if int64(len(dst)) < count*frameBytes {
		return io.ErrShortBuffer
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	remaining := count
	cursor := start
	out := dst

	for _, e := range p.index {
		if remaining == 0 {
			break
		}
		if e.StartFrame > cursor || cursor >= e.StartFrame+e.FrameCount {
			continue
		}

		frames := e.StartFrame + e.FrameCount - cursor
		if frames > remaining {
			frames = remaining
		}

		src, err := p.acc.EnsureAccessible(
			e.StartByte+(cursor-e.StartFrame)*frameBytes,
			frames*frameBytes)
		if err != nil {
			return err
		}
		copy(out, src)

		out = out[frames*frameBytes:]
		cursor += frames
		remaining -= frames
	}

	return nil
}

// Close releases the mapping and file handle.
//
// After Close is called, the Provider should not be used.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acc.Close()
}
