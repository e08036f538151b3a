package types

// Format represents the detected container format
type Format int

const (
	// FormatUnknown represents an unknown or unsupported container.
	FormatUnknown Format = iota
	// FormatWAV represents RIFF-WAV PCM files.
	FormatWAV
	// FormatWave64 represents Sony Wave64 PCM files.
	FormatWave64
)

// String returns the human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "RIFF WAV"
	case FormatWave64:
		return "Wave64"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatWAV:
		return []string{".wav"}
	case FormatWave64:
		return []string{".w64"}
	default:
		return nil
	}
}
