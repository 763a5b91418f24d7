package model

// Mode represents the MP3 encoder preset.
//
// The mode is chosen once at startup and affects exactly two things: the
// arguments passed to the lame binary and the quality suffix appended to
// target directory names. File selection never depends on the mode.
type Mode int

const (
	// ModeUnset means no mode has been chosen. A Mode must be selected
	// explicitly before converting.
	ModeUnset Mode = iota

	// ModeVBR encodes with lame's V0 variable bitrate preset.
	ModeVBR

	// ModeCBR encodes with a constant bitrate of 320 kbps.
	ModeCBR
)

// EncoderArgs returns the lame arguments for the mode.
//
// Returns:
//   - ["-V", "0", "--vbr-new"] for ModeVBR
//   - ["-b", "320"] for ModeCBR
func (m Mode) EncoderArgs() []string {
	switch m {
	case ModeVBR:
		return []string{"-V", "0", "--vbr-new"}
	case ModeCBR:
		return []string{"-b", "320"}
	default:
		return nil
	}
}

// Suffix returns the quality marker used in target directory names,
// "V0" or "320".
func (m Mode) Suffix() string {
	switch m {
	case ModeVBR:
		return "V0"
	case ModeCBR:
		return "320"
	default:
		return ""
	}
}

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeVBR:
		return "VBR V0"
	case ModeCBR:
		return "CBR 320"
	default:
		return "unset"
	}
}

// Placement represents where converted files are written.
type Placement int

const (
	// PlacementInPlace writes MP3s alongside the source files and leaves
	// everything else in the directory untouched.
	PlacementInPlace Placement = iota

	// PlacementNewDir writes all output into a fresh directory named after
	// the source directory plus the mode's quality suffix. Non-FLAC files
	// are copied into it.
	PlacementNewDir
)

// String returns a human-readable name for the placement.
func (p Placement) String() string {
	switch p {
	case PlacementNewDir:
		return "new directory"
	default:
		return "in place"
	}
}
