package types

import (
	"fmt"
	"time"
)

// Info represents the PCM stream parameters extracted from a container's
// format chunk, plus the frame total accumulated across its data chunks.
type Info struct {
	// SampleRate in Hz.
	SampleRate int

	// Channels is the interleaved channel count (1=mono, 2=stereo).
	Channels int

	// BytesPerSample is the per-channel sample width, rounded up from the
	// declared bits per sample to whole bytes.
	BytesPerSample int

	// FloatSamples reports IEEE-float encoding. Always false: float PCM is
	// rejected during parsing rather than decoded.
	FloatSamples bool

	// TotalFrames is the number of sample frames across all data chunks.
	TotalFrames int64
}

// BytesPerFrame returns the byte width of one interleaved sample frame.
func (i Info) BytesPerFrame() int {
	return i.BytesPerSample * i.Channels
}

// Duration returns the total playback time of the stream.
func (i Info) Duration() time.Duration {
	if i.SampleRate == 0 {
		return 0
	}
	return time.Duration(i.TotalFrames) * time.Second / time.Duration(i.SampleRate)
}

// String returns a human-readable representation of the stream parameters.
// Example output: "PCM 44.1kHz 16-bit stereo".
func (i Info) String() string {
	return fmt.Sprintf("PCM %.1fkHz %d-bit %s",
		float64(i.SampleRate)/1000, i.BytesPerSample*8, channelDescription(i.Channels))
}

func channelDescription(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d channels", channels)
	}
}
