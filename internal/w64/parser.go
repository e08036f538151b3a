// Package w64 parses the Sony Wave64 container. Wave64 is RIFF recast for
// large files: 16-byte GUIDs in place of 4-byte tags, 64-bit chunk sizes,
// and 8-byte alignment. Unlike RIFF, a chunk's size field includes its own
// 24-byte header.
package w64

import (
	"bytes"
	"fmt"

	"github.com/simonhull/pcmaudio/internal/binary"
	"github.com/simonhull/pcmaudio/internal/filemap"
	"github.com/simonhull/pcmaudio/internal/registry"
	"github.com/simonhull/pcmaudio/internal/types"
)

const (
	headerSize      = 40 // riff GUID + file size + wave GUID
	chunkHeaderSize = 24 // chunk GUID + size

	// Smallest plausible Wave64 file: header, a fmt chunk with a full
	// WaveFormatEx body, and an empty data chunk.
	minFileSize = headerSize + chunkHeaderSize + 24 + chunkHeaderSize

	formatPCM       = 1
	formatIEEEFloat = 3
)

// Wave64 GUIDs begin with the ASCII of the corresponding RIFF tag.
var (
	guidRIFF = []byte{0x72, 0x69, 0x66, 0x66, 0x2E, 0x91, 0xCF, 0x11, 0xA5, 0xD6, 0x28, 0xDB, 0x04, 0xC1, 0x00, 0x00}
	guidWAVE = []byte{0x77, 0x61, 0x76, 0x65, 0xF3, 0xAC, 0xD3, 0x11, 0x8C, 0xD1, 0x00, 0xC0, 0x4F, 0x8E, 0xDB, 0x8A}
	guidFmt  = []byte{0x66, 0x6D, 0x74, 0x20, 0xF3, 0xAC, 0xD3, 0x11, 0x8C, 0xD1, 0x00, 0xC0, 0x4F, 0x8E, 0xDB, 0x8A}
	guidData = []byte{0x64, 0x61, 0x74, 0x61, 0xF3, 0xAC, 0xD3, 0x11, 0x8C, 0xD1, 0x00, 0xC0, 0x4F, 0x8E, 0xDB, 0x8A}
)

func init() {
	registry.Register(types.FormatWave64, parser{})
}

// parser implements registry.Parser for Wave64 files.
type parser struct{}

func (parser) Parse(acc *filemap.Accessor, path string) (types.Info, types.Index, error) {
	var info types.Info
	var index types.Index

	if acc.Size() < minFileSize {
		return info, nil, &types.FormatMismatchError{
			Path:   path,
			Format: types.FormatWave64,
			Reason: "file too small to be a Wave64 file",
		}
	}

	hdr, err := binary.Bytes(acc, 0, headerSize, "Wave64 header")
	if err != nil {
		return info, nil, err
	}
	if !bytes.Equal(hdr[0:16], guidRIFF) {
		return info, nil, &types.FormatMismatchError{
			Path:   path,
			Format: types.FormatWave64,
			Reason: "missing Wave64 RIFF GUID",
		}
	}
	if !bytes.Equal(hdr[24:40], guidWAVE) {
		return info, nil, &types.FormatMismatchError{
			Path:   path,
			Format: types.FormatWave64,
			Reason: "missing Wave64 WAVE GUID",
		}
	}

	fileSize, err := binary.ReadLE[uint64](acc, 16, "declared file size")
	if err != nil {
		return info, nil, err
	}

	budget := int64(fileSize) - headerSize
	cursor := int64(headerSize)
	gotFmt := false

	for budget > 0 {
		guid, err := binary.Bytes(acc, cursor, 16, "chunk GUID")
		if err != nil {
			return info, nil, &types.CorruptedFileError{
				Path:   path,
				Offset: cursor,
				Reason: "chunk header extends past end of file",
			}
		}
		rawSize, err := binary.ReadLE[uint64](acc, cursor+16, "chunk size")
		if err != nil {
			return info, nil, &types.CorruptedFileError{
				Path:   path,
				Offset: cursor + 16,
				Reason: "chunk header extends past end of file",
			}
		}
		chunkSize := int64(rawSize)

		// Wave64 sizes count the chunk header itself.
		if chunkSize < chunkHeaderSize {
			return info, nil, &types.CorruptedFileError{
				Path:   path,
				Offset: cursor + 16,
				Reason: fmt.Sprintf("chunk size %d smaller than its own header", chunkSize),
			}
		}
		bodyStart := cursor + chunkHeaderSize
		bodySize := chunkSize - chunkHeaderSize

		switch {
		case bytes.Equal(guid, guidFmt):
			if gotFmt {
				return info, nil, &types.CorruptedFileError{
					Path:   path,
					Offset: cursor,
					Reason: "multiple fmt chunks",
				}
			}
			gotFmt = true

			if err := parseFormat(acc, bodyStart, bodySize, path, &info); err != nil {
				return info, nil, err
			}

		case bytes.Equal(guid, guidData):
			if !gotFmt {
				return info, nil, &types.CorruptedFileError{
					Path:   path,
					Offset: cursor,
					Reason: "data chunk before fmt chunk",
				}
			}

			samples := bodySize / int64(info.BytesPerSample)
			frames := samples / int64(info.Channels)

			index = append(index, types.IndexEntry{
				StartFrame: info.TotalFrames,
				FrameCount: frames,
				StartByte:  bodyStart,
			})
			info.TotalFrames += frames
		}

		// Chunks are aligned to 8 bytes; the size field does not include
		// the padding.
		aligned := (chunkSize + 7) &^ 7
		cursor += aligned
		budget -= aligned
	}

	return info, index, nil
}

// parseFormat decodes the WaveFormatEx structure at the start of a fmt chunk
// body. See http://msdn.microsoft.com/en-us/library/dd757720(VS.85).aspx
func parseFormat(acc *filemap.Accessor, off, size int64, path string, info *types.Info) error {
	if size < 16 {
		return &types.CorruptedFileError{
			Path:   path,
			Offset: off,
			Reason: fmt.Sprintf("fmt chunk body of %d bytes is too small", size),
		}
	}

	formatTag, err := binary.ReadLE[uint16](acc, off, "format tag")
	if err != nil {
		return err
	}
	switch formatTag {
	case formatPCM:
	case formatIEEEFloat:
		return &types.UnsupportedFormatError{
			Path:   path,
			Reason: "IEEE float samples are not supported",
		}
	default:
		return &types.UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("format tag %d is not linear PCM", formatTag),
		}
	}

	channels, err := binary.ReadLE[uint16](acc, off+2, "channel count")
	if err != nil {
		return err
	}
	sampleRate, err := binary.ReadLE[uint32](acc, off+4, "sample rate")
	if err != nil {
		return err
	}
	bitsPerSample, err := binary.ReadLE[uint16](acc, off+14, "bits per sample")
	if err != nil {
		return err
	}

	if channels == 0 {
		return &types.CorruptedFileError{Path: path, Offset: off + 2, Reason: "zero channel count"}
	}
	if bitsPerSample == 0 {
		return &types.CorruptedFileError{Path: path, Offset: off + 14, Reason: "zero bits per sample"}
	}

	info.SampleRate = int(sampleRate)
	info.Channels = int(channels)
	info.BytesPerSample = (int(bitsPerSample) + 7) / 8 // round up to whole bytes
	return nil
}
