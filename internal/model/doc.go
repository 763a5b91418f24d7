// Package model defines the core data structures used throughout
// the flac2mp3 application.
//
// # Release
//
// Release represents one source directory of FLAC files together with the
// resolved target directory for its converted output:
//
//	target := model.ResolveTargetDir("/music/Album", model.ModeVBR, model.PlacementNewDir, "")
//	// target = "/music/Album [V0]"
//
// # Track
//
// Track represents a single FLAC file scheduled for conversion:
//
//	track := model.NewTrack("/music/Album/01 Intro.flac", "/music/Album [V0]", 1, tags)
//	fmt.Println(track.Output) // "/music/Album [V0]/01 Intro.mp3"
//
// # TagSet
//
// TagSet holds the Vorbis comments read from a FLAC file, normalized to
// upper-case keys:
//
//	tags := model.NewTagSet(map[string]string{"artist": "Nightfall", "date": "1997"})
//	tags.Get("ARTIST") // "Nightfall"
//
// # Mode and Placement
//
// Mode selects the encoder preset (VBR V0 or CBR 320) and Placement selects
// where converted files are written (alongside the sources or into a fresh
// directory carrying the mode's quality suffix).
package model
