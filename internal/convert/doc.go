// Package convert orchestrates FLAC to MP3 conversion runs.
//
// A run happens in two phases:
//
//	manager := convert.NewManager(settings, logger, onProgress)
//	plan, err := manager.Plan(ctx, "/music/Album")
//	// inspect or print the plan (dry runs stop here)
//	err = manager.Run(ctx)
//
// # Planning
//
// Plan inspects the source path and classifies every directory entry:
// FLAC files become conversions, other files are copied (when
// converting into a new directory) or left in place, and subdirectories
// are skipped. Tags are read up front so the plan carries everything
// the run needs: track numbering, multidisc detection, and the cover
// art source.
//
// # Running
//
// Run executes the plan sequentially and stops at the first failure.
// Each FLAC is decoded to a temporary WAV in the target directory,
// encoded to MP3, and retagged. The temporary WAV is removed whether
// or not the conversion succeeds, partially written MP3s are removed
// on failure, and source files are never written to.
//
// Progress is reported two ways: coarse counters via GetProgress for
// progress bars, and ProgressEvent callbacks for log style output.
package convert
