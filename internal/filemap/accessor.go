// Package filemap provides windowed, read-only memory-mapped access to a
// file. At most one window is mapped at a time; a view returned by
// EnsureAccessible is only valid until the next call, because the call may
// replace the window.
package filemap

import (
	"fmt"
	"os"
	"strconv"

	"github.com/simonhull/pcmaudio/internal/types"
)

const (
	// windowAlign is the boundary window starts are aligned down to.
	windowAlign = 1 << 20 // 1 MiB

	// defaultFloor is the minimum window length under the windowed policy.
	defaultFloor = 16 << 20 // 16 MiB
)

// Policy controls how EnsureAccessible selects windows.
//
// Under the windowed policy the window start is aligned down to a 1 MiB
// boundary and the length is rounded up to the next 1 MiB boundary with a
// configurable floor, clamped to the end of the file. This bounds peak
// mapped memory on address-constrained processes while amortizing remap cost
// over nearby reads. Otherwise the whole file is mapped once.
type Policy struct {
	// Windowed selects the bounded sliding-window policy instead of a
	// single whole-file mapping.
	Windowed bool

	// Floor is the minimum window length in bytes. Zero means the 16 MiB
	// default. Values are rounded up to the 1 MiB alignment.
	Floor int64
}

// DefaultPolicy returns the policy for this process: windowed on 32-bit
// address spaces, whole-file otherwise.
func DefaultPolicy() Policy {
	return Policy{Windowed: strconv.IntSize == 32}
}

func (p Policy) floor() int64 {
	if p.Floor <= 0 {
		return defaultFloor
	}
	return (p.Floor + windowAlign - 1) &^ (windowAlign - 1)
}

// Accessor owns a read-only handle to a file and serves byte-range views of
// it through a single lazily remapped window.
//
// Accessor is not safe for concurrent use: each call to EnsureAccessible may
// unmap the window a previous view points into.
type Accessor struct {
	f      *os.File
	path   string
	size   int64
	policy Policy

	winStart int64
	win      []byte

	remaps int
}

// Open opens path read-only and captures its size. No mapping is established
// until the first EnsureAccessible call.
func Open(path string, policy Policy) (*Accessor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return &Accessor{
		f:      f,
		path:   path,
		size:   stat.Size(),
		policy: policy,
	}, nil
}

// Path returns the file path backing this accessor.
func (a *Accessor) Path() string {
	return a.path
}

// Size returns the file size captured when the accessor was opened.
func (a *Accessor) Size() int64 {
	return a.size
}

// EnsureAccessible returns a view of the file bytes [off, off+length).
//
// The view aliases the current window and is invalidated by the next call:
// copy bytes out (or fully consume them) before requesting another range.
// Requests beyond the end of the file fail with *types.OutOfBoundsError;
// mapping failures with *types.MappingError.
func (a *Accessor) EnsureAccessible(off, length int64) ([]byte, error) {
	if off < 0 || length < 0 || off+length > a.size {
		return nil, &types.OutOfBoundsError{
			Path:   a.path,
			What:   "file bytes",
			Offset: off,
			Length: length,
			Limit:  a.size,
		}
	}
	if length == 0 {
		return nil, nil
	}

	// Serve from the current window when it already covers the range.
	if a.win != nil && off >= a.winStart && off+length <= a.winStart+int64(len(a.win)) {
		return a.win[off-a.winStart : off-a.winStart+length], nil
	}

	winStart, winLen := a.policy.window(off, length, a.size)

	if a.win != nil {
		// The old window dies here; outstanding views become invalid.
		if err := unmapRange(a.win); err != nil {
			return nil, &types.MappingError{Path: a.path, Offset: a.winStart, Length: int64(len(a.win)), Err: err}
		}
		a.win = nil
	}

	win, err := mapRange(a.f, winStart, winLen)
	if err != nil {
		return nil, &types.MappingError{Path: a.path, Offset: winStart, Length: winLen, Err: err}
	}

	a.winStart = winStart
	a.win = win
	a.remaps++

	return a.win[off-winStart : off-winStart+length], nil
}

// window computes the mapping range covering a request for [off, off+length)
// on a file of the given size. The caller has already bounds-checked the
// request.
func (p Policy) window(off, length, size int64) (start, winLen int64) {
	if !p.Windowed {
		return 0, size
	}

	start = off &^ (windowAlign - 1)
	length += off - start
	winLen = (length + windowAlign - 1) &^ (windowAlign - 1)
	if winLen < p.floor() {
		winLen = p.floor()
	}
	if winLen > size-start {
		winLen = size - start
	}
	return start, winLen
}

// Remaps returns how many times a window has been (re)mapped.
func (a *Accessor) Remaps() int {
	return a.remaps
}

// Close unmaps the current window, if any, and closes the file handle.
// Views returned by EnsureAccessible must not be used after Close.
func (a *Accessor) Close() error {
	var firstErr error
	if a.win != nil {
		firstErr = unmapRange(a.win)
		a.win = nil
	}
	if err := a.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
