// Package pcmaudio provides random access to PCM samples stored in
// uncompressed RIFF-WAV and Sony Wave64 files.
//
// pcmaudio validates the container, walks its chunk structure, and builds a
// compact index from logical sample frames to byte offsets. Reads are served
// through a sliding memory-mapped window, so arbitrary ranges of very large
// files can be read without loading them into memory.
//
// # Quick Start
//
// Opening a file and reading a range of frames:
//
//	p, err := pcmaudio.Open("take.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	buf := make([]byte, 1024*p.BytesPerFrame())
//	if err := p.ReadFrames(buf, 44100, 1024); err != nil {
//		log.Fatal(err)
//	}
//
// # Supported Formats
//
//   - RIFF-WAV: little-endian linear PCM (fmt compression code 1)
//   - Wave64: Sony's 64-bit RIFF variant, linear PCM only
//
// Compressed encodings and IEEE-float samples are rejected with
// *UnsupportedFormatError. This package reads audio; it does not decode,
// resample, or write it.
//
// # Architecture
//
// The library is three layers, composed by Provider:
//
//	[filemap]  - windowed, memory-mapped byte access
//	[wav, w64] - container parsers producing (Info, Index)
//	[Provider] - frame-range reads resolved through the index
//
// Opening probes the candidate containers in a fixed order (WAV, then
// Wave64). A signature mismatch moves on to the next candidate; structural
// corruption or an unsupported encoding is reported for the format whose
// signature matched, never masked by the fallback.
//
// # Concurrency
//
// One Provider holds one mapped window, so its reads are serialized
// internally. Open as many Providers over the same file as you need parallel
// readers; each owns an independent handle and window. OpenMany does this
// for whole batches of files.
package pcmaudio
