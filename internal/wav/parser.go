// Package wav parses the RIFF-WAV container: it validates the RIFF/WAVE
// signature, walks the chunk list, and indexes the PCM data chunks for
// random access. Overview of RIFF WAV: http://www.sonicspot.com/guide/wavefiles.html
package wav

import (
	"fmt"

	"github.com/simonhull/pcmaudio/internal/binary"
	"github.com/simonhull/pcmaudio/internal/filemap"
	"github.com/simonhull/pcmaudio/internal/registry"
	"github.com/simonhull/pcmaudio/internal/types"
)

const (
	headerSize      = 12 // "RIFF" + size + "WAVE"
	chunkHeaderSize = 8  // tag + size

	compressionPCM       = 1
	compressionIEEEFloat = 3
)

func init() {
	registry.Register(types.FormatWAV, parser{})
}

// parser implements registry.Parser for RIFF-WAV files.
type parser struct{}

func (parser) Parse(acc *filemap.Accessor, path string) (types.Info, types.Index, error) {
	var info types.Info
	var index types.Index

	if acc.Size() < headerSize {
		return info, nil, &types.FormatMismatchError{
			Path:   path,
			Format: types.FormatWAV,
			Reason: "file too small to hold a RIFF header",
		}
	}

	tag, err := binary.Tag(acc, 0, "RIFF signature")
	if err != nil {
		return info, nil, err
	}
	if tag != "RIFF" {
		return info, nil, &types.FormatMismatchError{
			Path:   path,
			Format: types.FormatWAV,
			Reason: "missing RIFF signature",
		}
	}

	riffSize, err := binary.ReadLE[uint32](acc, 4, "RIFF size")
	if err != nil {
		return info, nil, err
	}

	form, err := binary.Tag(acc, 8, "RIFF form type")
	if err != nil {
		return info, nil, err
	}
	if form != "WAVE" {
		return info, nil, &types.FormatMismatchError{
			Path:   path,
			Format: types.FormatWAV,
			Reason: "RIFF form type is not WAVE",
		}
	}

	// The WAVE form type already consumed 4 bytes of the declared size.
	// Budget is signed so an overlong chunk ends the walk instead of
	// wrapping.
	budget := int64(riffSize) - 4
	cursor := int64(headerSize)
	gotFmt := false

	for budget > 0 {
		tag, err := binary.Tag(acc, cursor, "chunk tag")
		if err != nil {
			return info, nil, &types.CorruptedFileError{
				Path:   path,
				Offset: cursor,
				Reason: "chunk header extends past end of file",
			}
		}
		rawSize, err := binary.ReadLE[uint32](acc, cursor+4, "chunk size")
		if err != nil {
			return info, nil, &types.CorruptedFileError{
				Path:   path,
				Offset: cursor + 4,
				Reason: "chunk header extends past end of file",
			}
		}
		chunkSize := int64(rawSize)

		budget -= chunkHeaderSize
		cursor += chunkHeaderSize

		switch tag {
		case "fmt ":
			if gotFmt {
				return info, nil, &types.CorruptedFileError{
					Path:   path,
					Offset: cursor - chunkHeaderSize,
					Reason: "multiple 'fmt ' chunks",
				}
			}
			gotFmt = true

			if err := parseFormat(acc, cursor, chunkSize, path, &info); err != nil {
				return info, nil, err
			}

		case "data":
			// This won't pick up 'data' chunks nested inside 'wavl'
			// chunks, since the 'wavl' chunk wraps those.
			if !gotFmt {
				return info, nil, &types.CorruptedFileError{
					Path:   path,
					Offset: cursor - chunkHeaderSize,
					Reason: "'data' chunk before 'fmt ' chunk",
				}
			}

			// Trailing bytes short of a whole frame are dropped.
			samples := chunkSize / int64(info.BytesPerSample)
			frames := samples / int64(info.Channels)

			index = append(index, types.IndexEntry{
				StartFrame: info.TotalFrames,
				FrameCount: frames,
				StartByte:  cursor,
			})
			info.TotalFrames += frames
		}

		// RIFF chunks are word aligned; odd sizes carry one pad byte not
		// counted in the size field.
		aligned := (chunkSize + 1) &^ 1
		cursor += aligned
		budget -= aligned
	}

	return info, index, nil
}

// parseFormat decodes the 'fmt ' chunk body at off into info. Only the
// leading fields are read: the trailing fields depend on the compression
// code and none of them matter for linear PCM.
func parseFormat(acc *filemap.Accessor, off, size int64, path string, info *types.Info) error {
	if size < 16 {
		return &types.CorruptedFileError{
			Path:   path,
			Offset: off,
			Reason: fmt.Sprintf("'fmt ' chunk of %d bytes is too small", size),
		}
	}

	compression, err := binary.ReadLE[uint16](acc, off, "compression code")
	if err != nil {
		return err
	}
	switch compression {
	case compressionPCM:
	case compressionIEEEFloat:
		return &types.UnsupportedFormatError{
			Path:   path,
			Reason: "IEEE float samples are not supported",
		}
	default:
		return &types.UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("compression code %d is not linear PCM", compression),
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
	// Skip avg bytes/sec and block align; neither can be trusted.
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
