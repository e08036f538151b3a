package types

import (
	"testing"
	"time"
)

func TestInfoBytesPerFrame(t *testing.T) {
	info := Info{SampleRate: 44100, Channels: 2, BytesPerSample: 2}
	if got := info.BytesPerFrame(); got != 4 {
		t.Errorf("BytesPerFrame() = %d, want 4", got)
	}
}

func TestInfoDuration(t *testing.T) {
	info := Info{SampleRate: 8000, Channels: 1, BytesPerSample: 2, TotalFrames: 12000}
	if got := info.Duration(); got != 1500*time.Millisecond {
		t.Errorf("Duration() = %v, want 1.5s", got)
	}

	// A zero sample rate must not divide by zero.
	if got := (Info{}).Duration(); got != 0 {
		t.Errorf("zero Info Duration() = %v, want 0", got)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{SampleRate: 44100, Channels: 2, BytesPerSample: 2}, "PCM 44.1kHz 16-bit stereo"},
		{Info{SampleRate: 8000, Channels: 1, BytesPerSample: 1}, "PCM 8.0kHz 8-bit mono"},
		{Info{SampleRate: 48000, Channels: 6, BytesPerSample: 3}, "PCM 48.0kHz 24-bit 6 channels"},
	}

	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
