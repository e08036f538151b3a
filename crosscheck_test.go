package pcmaudio_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/simonhull/pcmaudio"
)

// TestCrossCheckGoAudioEncoder opens a file produced by an independent WAV
// encoder and verifies the parsed parameters and sample bytes against the
// samples that went in.
func TestCrossCheckGoAudioEncoder(t *testing.T) {
	const (
		sampleRate = 44100
		channels   = 2
		frames     = 1000
	)

	samples := make([]int, frames*channels)
	for i := range samples {
		samples[i] = (i*37)%32768 - 16384
	}

	path := filepath.Join(t.TempDir(), "encoded.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	enc := gowav.NewEncoder(f, sampleRate, 16, channels, 1)
	err = enc.Write(&goaudio.IntBuffer{
		Data:           samples,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	p, err := pcmaudio.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.SampleRate() != sampleRate {
		t.Errorf("SampleRate = %d, want %d", p.SampleRate(), sampleRate)
	}
	if p.Channels() != channels {
		t.Errorf("Channels = %d, want %d", p.Channels(), channels)
	}
	if p.BytesPerSample() != 2 {
		t.Errorf("BytesPerSample = %d, want 2", p.BytesPerSample())
	}
	if p.TotalFrames() != frames {
		t.Fatalf("TotalFrames = %d, want %d", p.TotalFrames(), frames)
	}

	buf := make([]byte, frames*p.BytesPerFrame())
	if err := p.ReadFrames(buf, 0, frames); err != nil {
		t.Fatalf("ReadFrames: %v", err)
	}

	for i, want := range samples {
		got := int(int16(binary.LittleEndian.Uint16(buf[i*2:])))
		if got != want {
			t.Fatalf("sample %d = %d, want %d", i, got, want)
		}
	}
}
