// Package encoder shells out to the flac and lame command line tools
// to turn FLAC files into MP3s.
//
// Conversion is a two stage pipeline:
//
//	flac <src> -d --silent --force -o <tmp.wav>
//	lame --silent -q 0 -V 0 --vbr-new --add-id3v2 --id3v2-only <tmp.wav> <dst.mp3>
//
// The Decoder and Encoder types wrap one stage each. Both run their
// binary through a Runner, which can be replaced with a stub to assert
// the exact argument vector without spawning processes.
//
// Neither tool is chatty under --silent, but whatever they do print is
// kept in a bounded tail and attached to the error when a stage fails,
// so the user sees the tool's own diagnostics instead of just an exit
// code.
package encoder
