package convert

import (
	"flac2mp3/internal/model"
)

// Action classifies what a run will do with one directory entry.
type Action int

const (
	// ActionConvert decodes and re-encodes a FLAC file into an MP3.
	ActionConvert Action = iota

	// ActionCopy copies a non-FLAC file into the target directory
	// unchanged.
	ActionCopy

	// ActionSkip leaves an entry untouched.
	ActionSkip
)

// String returns the action name as shown in plan listings.
func (a Action) String() string {
	switch a {
	case ActionConvert:
		return "convert"
	case ActionCopy:
		return "copy"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Entry is one planned unit of work.
type Entry struct {
	// Source is the path of the input file or subdirectory.
	Source string

	// Action is what the run will do with the source.
	Action Action

	// Output is the path the entry produces. Empty for skips.
	Output string

	// Track carries the source metadata for convert entries.
	Track *model.Track

	// Note explains skips in plan listings ("directory", "left in place").
	Note string
}

// Plan describes everything a run will do, in processing order.
//
// Plans are built by Manager.Plan and consumed by Manager.Run; dry
// runs print the plan instead of executing it.
type Plan struct {
	// Source is the file or directory the plan was built from.
	Source string

	// SingleFile is true when Source is a file rather than a directory.
	SingleFile bool

	// Release groups the conversion targets and release-level facts.
	Release *model.Release

	// Entries lists the planned work in processing order.
	Entries []Entry
}

// Counts returns how many entries fall under each action.
func (p *Plan) Counts() (converts, copies, skips int) {
	for _, entry := range p.Entries {
		switch entry.Action {
		case ActionConvert:
			converts++
		case ActionCopy:
			copies++
		case ActionSkip:
			skips++
		}
	}
	return converts, copies, skips
}

// Actionable returns the number of entries that produce output.
func (p *Plan) Actionable() int {
	converts, copies, _ := p.Counts()
	return converts + copies
}
