package w64

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/pcmaudio/internal/filemap"
	"github.com/simonhull/pcmaudio/internal/types"
)

// w64Chunk builds a complete Wave64 chunk: the size field counts the 24-byte
// header, and the chunk is padded to 8-byte alignment.
func w64Chunk(guid, body []byte) []byte {
	buf := &bytes.Buffer{}
	buf.Write(guid)
	binary.Write(buf, binary.LittleEndian, uint64(chunkHeaderSize+len(body)))
	buf.Write(body)
	if pad := buf.Len() % 8; pad != 0 {
		buf.Write(make([]byte, 8-pad))
	}
	return buf.Bytes()
}

// fmtBody builds a WaveFormatEx body padded to the canonical 24 bytes.
func fmtBody(formatTag, channels uint16, sampleRate uint32, bitsPerSample uint16) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, formatTag)
	binary.Write(buf, binary.LittleEndian, channels)
	binary.Write(buf, binary.LittleEndian, sampleRate)
	binary.Write(buf, binary.LittleEndian, sampleRate*uint32(channels)*uint32(bitsPerSample)/8) // avg bytes/sec
	binary.Write(buf, binary.LittleEndian, channels*bitsPerSample/8)                            // block align
	binary.Write(buf, binary.LittleEndian, bitsPerSample)
	binary.Write(buf, binary.LittleEndian, uint16(0)) // cbSize
	buf.Write(make([]byte, 6))                        // alignment padding
	return buf.Bytes()
}

// w64File assembles a Wave64 file from complete chunks.
func w64File(chunks ...[]byte) []byte {
	body := &bytes.Buffer{}
	for _, c := range chunks {
		body.Write(c)
	}

	buf := &bytes.Buffer{}
	buf.Write(guidRIFF)
	binary.Write(buf, binary.LittleEndian, uint64(headerSize+body.Len()))
	buf.Write(guidWAVE)
	body.WriteTo(buf)
	return buf.Bytes()
}

func parseFixture(t *testing.T, data []byte) (types.Info, types.Index, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.w64")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	acc, err := filemap.Open(path, filemap.Policy{})
	if err != nil {
		t.Fatalf("open accessor: %v", err)
	}
	t.Cleanup(func() { acc.Close() })

	return parser{}.Parse(acc, path)
}

func TestParseMinimalWave64(t *testing.T) {
	data := w64File(
		w64Chunk(guidFmt, fmtBody(1, 2, 44100, 16)),
		w64Chunk(guidData, make([]byte, 1600)),
	)

	info, index, err := parseFixture(t, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if info.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", info.SampleRate)
	}
	if info.Channels != 2 {
		t.Errorf("Channels = %d, want 2", info.Channels)
	}
	if info.BytesPerSample != 2 {
		t.Errorf("BytesPerSample = %d, want 2", info.BytesPerSample)
	}
	if info.TotalFrames != 400 {
		t.Errorf("TotalFrames = %d, want 400", info.TotalFrames)
	}

	// Header (40) + fmt chunk (24+24) + data chunk header (24). The frame
	// count and start byte must not include the data chunk's own header.
	want := types.IndexEntry{StartFrame: 0, FrameCount: 400, StartByte: 112}
	if len(index) != 1 || index[0] != want {
		t.Errorf("index = %+v, want [%+v]", index, want)
	}
}

func TestParseMultipleDataChunks(t *testing.T) {
	data := w64File(
		w64Chunk(guidFmt, fmtBody(1, 1, 8000, 8)),
		w64Chunk(guidData, make([]byte, 401)), // odd body, padded to 8
		w64Chunk(guidData, make([]byte, 240)),
	)

	info, index, err := parseFixture(t, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if info.TotalFrames != 641 {
		t.Errorf("TotalFrames = %d, want 641", info.TotalFrames)
	}
	if err := index.Validate(info.TotalFrames); err != nil {
		t.Errorf("index invariant: %v", err)
	}
	if len(index) != 2 {
		t.Fatalf("len(index) = %d, want 2", len(index))
	}
	// First data body starts after header + fmt chunk + data header.
	if index[0].StartByte != 112 {
		t.Errorf("index[0].StartByte = %d, want 112", index[0].StartByte)
	}
	// Second chunk starts at the 8-byte-aligned end of the first
	// (24+401 = 425, aligned to 432), plus its own 24-byte header.
	if want := int64(88 + 432 + 24); index[1].StartByte != want {
		t.Errorf("index[1].StartByte = %d, want %d", index[1].StartByte, want)
	}
}

func TestParseSkipsUnknownChunks(t *testing.T) {
	junkGUID := bytes.Repeat([]byte{0xAB}, 16)
	data := w64File(
		w64Chunk(guidFmt, fmtBody(1, 1, 8000, 8)),
		w64Chunk(junkGUID, make([]byte, 30)),
		w64Chunk(guidData, make([]byte, 100)),
	)

	info, index, err := parseFixture(t, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.TotalFrames != 100 || len(index) != 1 {
		t.Errorf("TotalFrames = %d, len(index) = %d, want 100 and 1", info.TotalFrames, len(index))
	}
}

func TestParseNotWave64(t *testing.T) {
	data := make([]byte, 200)
	copy(data, "RIFF")

	_, _, err := parseFixture(t, data)
	var mismatch *types.FormatMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Parse = %v, want FormatMismatchError", err)
	}
}

func TestParseWrongWaveGUID(t *testing.T) {
	data := w64File(
		w64Chunk(guidFmt, fmtBody(1, 2, 44100, 16)),
		w64Chunk(guidData, make([]byte, 16)),
	)
	copy(data[24:40], bytes.Repeat([]byte{0xCD}, 16))

	_, _, err := parseFixture(t, data)
	var mismatch *types.FormatMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Parse = %v, want FormatMismatchError", err)
	}
}

func TestParseTooSmall(t *testing.T) {
	// A real header but nothing else: below the minimum plausible size.
	data := make([]byte, headerSize)
	copy(data, guidRIFF)
	copy(data[24:], guidWAVE)

	_, _, err := parseFixture(t, data)
	var mismatch *types.FormatMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Parse = %v, want FormatMismatchError", err)
	}
}

func TestParseIEEEFloatDistinct(t *testing.T) {
	data := w64File(
		w64Chunk(guidFmt, fmtBody(3, 2, 44100, 32)),
		w64Chunk(guidData, make([]byte, 160)),
	)

	_, _, err := parseFixture(t, data)
	var unsupported *types.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Parse = %v, want UnsupportedFormatError", err)
	}
	if !bytes.Contains([]byte(err.Error()), []byte("IEEE float")) {
		t.Errorf("error %q does not name IEEE float", err)
	}
}

func TestParseNonPCM(t *testing.T) {
	data := w64File(
		w64Chunk(guidFmt, fmtBody(2, 2, 44100, 16)),
		w64Chunk(guidData, make([]byte, 160)),
	)

	_, _, err := parseFixture(t, data)
	var unsupported *types.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Parse = %v, want UnsupportedFormatError", err)
	}
}

func TestParseDataBeforeFmt(t *testing.T) {
	data := w64File(
		w64Chunk(guidData, make([]byte, 160)),
		w64Chunk(guidFmt, fmtBody(1, 2, 44100, 16)),
	)

	_, _, err := parseFixture(t, data)
	var corrupted *types.CorruptedFileError
	if !errors.As(err, &corrupted) {
		t.Fatalf("Parse = %v, want CorruptedFileError", err)
	}
}

func TestParseMultipleFmtChunks(t *testing.T) {
	data := w64File(
		w64Chunk(guidFmt, fmtBody(1, 2, 44100, 16)),
		w64Chunk(guidFmt, fmtBody(1, 2, 44100, 16)),
		w64Chunk(guidData, make([]byte, 16)),
	)

	_, _, err := parseFixture(t, data)
	var corrupted *types.CorruptedFileError
	if !errors.As(err, &corrupted) {
		t.Fatalf("Parse = %v, want CorruptedFileError", err)
	}
}

func TestParseChunkSizeBelowHeader(t *testing.T) {
	data := w64File(
		w64Chunk(guidFmt, fmtBody(1, 2, 44100, 16)),
		w64Chunk(guidData, make([]byte, 64)),
	)
	// Corrupt the data chunk's size to less than its own header.
	sizeOff := headerSize + 48 + 16
	binary.LittleEndian.PutUint64(data[sizeOff:], 8)

	_, _, err := parseFixture(t, data)
	var corrupted *types.CorruptedFileError
	if !errors.As(err, &corrupted) {
		t.Fatalf("Parse = %v, want CorruptedFileError", err)
	}
}
