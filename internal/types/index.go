package types

import "fmt"

// IndexEntry maps one contiguous run of interleaved sample frames, found in a
// single data chunk, to its physical location in the file.
type IndexEntry struct {
	// StartFrame is the logical frame position of the run's first frame.
	StartFrame int64

	// FrameCount is the number of frames in the run.
	FrameCount int64

	// StartByte is the file offset of the run's first byte.
	StartByte int64
}

// Index is the ordered sequence of frame runs discovered while walking a
// container's chunks. Entries appear in the order the chunks were
// encountered, which is also ascending StartFrame order.
type Index []IndexEntry

// Validate checks the coverage invariant: entries are non-overlapping and
// together cover exactly [0, totalFrames) with no gaps.
func (x Index) Validate(totalFrames int64) error {
	next := int64(0)
	for i, e := range x {
		if e.StartFrame != next {
			return fmt.Errorf("index entry %d starts at frame %d, want %d", i, e.StartFrame, next)
		}
		if e.FrameCount < 0 {
			return fmt.Errorf("index entry %d has negative frame count %d", i, e.FrameCount)
		}
		next += e.FrameCount
	}
	if next != totalFrames {
		return fmt.Errorf("index covers %d frames, want %d", next, totalFrames)
	}
	return nil
}
