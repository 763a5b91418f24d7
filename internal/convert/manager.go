package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"flac2mp3/internal/audio"
	"flac2mp3/internal/config"
	"flac2mp3/internal/encoder"
	"flac2mp3/internal/flac"
	ioutils "flac2mp3/internal/io"
	"flac2mp3/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a conversion progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// TagReader reads metadata out of FLAC sources.
type TagReader interface {
	ReadTags(path string) (model.TagSet, error)
	ReadPicture(path string) ([]byte, error)
}

// Decoder turns a FLAC file into a WAV file.
type Decoder interface {
	Decode(ctx context.Context, src, dst string) error
}

// Encoder turns a WAV file into an MP3.
type Encoder interface {
	Encode(ctx context.Context, src, dst string, mode model.Mode) error
}

// Option configures the Manager.
type Option func(*Manager)

// WithDecoder injects a custom decoder (primarily for tests).
func WithDecoder(d Decoder) Option {
	return func(m *Manager) {
		if d != nil {
			m.decoder = d
		}
	}
}

// WithEncoder injects a custom encoder (primarily for tests).
func WithEncoder(e Encoder) Option {
	return func(m *Manager) {
		if e != nil {
			m.encoder = e
		}
	}
}

// WithTagReader injects a custom tag reader (primarily for tests).
func WithTagReader(r TagReader) Option {
	return func(m *Manager) {
		if r != nil {
			m.tags = r
		}
	}
}

// Manager coordinates conversion runs.
type Manager struct {
	settings *config.Settings
	decoder  Decoder
	encoder  Encoder
	tags     TagReader
	tagger   *audio.Tagger
	playlist *audio.PlaylistCreator
	images   *ioutils.ImageService
	log      *slog.Logger

	plan *Plan

	totalEntries int32
	doneEntries  int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new conversion Manager.
func NewManager(settings *config.Settings, logger *slog.Logger, onProgress func(ProgressEvent), opts ...Option) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Manager{
		settings:   settings,
		decoder:    encoder.NewDecoder(settings.FlacBinary, nil, logger),
		encoder:    encoder.NewEncoder(settings.LameBinary, nil, logger),
		tags:       flac.NewReader(),
		tagger:     audio.NewTagger(),
		playlist:   audio.NewPlaylistCreator(settings.M3UExtended),
		images:     ioutils.NewImageService(),
		log:        logger,
		onProgress: onProgress,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Plan inspects path and builds the work list for a Run.
//
// The path may be a directory, in which case every entry is
// classified, or a single FLAC file. Tags are read during planning so
// errors surface before anything is written.
func (m *Manager) Plan(ctx context.Context, path string) (*Plan, error) {
	if err := m.settings.Validate(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	var plan *Plan
	if info.IsDir() {
		plan, err = m.planDirectory(ctx, abs)
	} else {
		plan, err = m.planFile(abs)
	}
	if err != nil {
		return nil, err
	}

	m.plan = plan
	atomic.StoreInt32(&m.totalEntries, int32(plan.Actionable()))
	atomic.StoreInt32(&m.doneEntries, 0)
	m.log.Debug("plan built", "source", abs, "entries", len(plan.Entries), "tracks", len(plan.Release.Tracks))
	return plan, nil
}

// Run executes the plan built by the last Plan call.
//
// Entries are processed sequentially in plan order. The first failure
// aborts the run; completed outputs are kept, the failing track's
// partial output is removed, and everything after it is left undone.
func (m *Manager) Run(ctx context.Context) error {
	if m.plan == nil {
		return errors.New("no plan: call Plan first")
	}
	plan := m.plan
	release := plan.Release
	m.log.Debug("starting run", "target", release.TargetDir, "mode", m.settings.Mode.String())

	// The target directory is created exactly once, before the first
	// write. An existing directory aborts the run while the sources
	// are still untouched.
	if m.settings.Placement == model.PlacementNewDir {
		if m.settings.TargetParent != "" {
			if err := ioutils.EnsureDir(filepath.Dir(release.TargetDir)); err != nil {
				return fmt.Errorf("create target parent: %w", err)
			}
		}
		if _, err := os.Stat(release.TargetDir); err == nil {
			return fmt.Errorf("target directory %s already exists", release.TargetDir)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.Mkdir(release.TargetDir, 0755); err != nil {
			return fmt.Errorf("create target directory: %w", err)
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Created %s", release.TargetDir), Level: LevelVerbose})
	}

	var artwork []byte
	var artworkMime string
	if len(release.Tracks) > 0 {
		artwork, artworkMime = m.loadArtwork(ctx, release)
	}
	tagCtx := audio.TagContext{
		Multidisc: release.Multidisc,
	}
	if !plan.SingleFile {
		tagCtx.FlacCount = len(release.Tracks)
	}

	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch entry.Action {
		case ActionConvert:
			if err := m.convertTrack(ctx, entry.Track, tagCtx, artwork, artworkMime); err != nil {
				if !errors.Is(err, context.Canceled) {
					m.progress(ProgressEvent{Message: fmt.Sprintf("Error converting %s: %v", filepath.Base(entry.Source), err), Level: LevelError})
				}
				return err
			}
			atomic.AddInt32(&m.doneEntries, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Converted: %s", filepath.Base(entry.Track.Output)), Level: LevelVerbose})
		case ActionCopy:
			if err := ioutils.CopyFile(ctx, entry.Source, entry.Output); err != nil {
				if !errors.Is(err, context.Canceled) {
					m.progress(ProgressEvent{Message: fmt.Sprintf("Error copying %s: %v", filepath.Base(entry.Source), err), Level: LevelError})
				}
				return fmt.Errorf("copy %s: %w", filepath.Base(entry.Source), err)
			}
			atomic.AddInt32(&m.doneEntries, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Copied: %s", filepath.Base(entry.Source)), Level: LevelVerbose})
		case ActionSkip:
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s (%s)", filepath.Base(entry.Source), entry.Note), Level: LevelVerbose})
		}
	}

	if m.settings.CreatePlaylist {
		m.writePlaylist(ctx, plan)
	}

	converts, copies, _ := plan.Counts()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s: %d converted, %d copied", filepath.Base(plan.Source), converts, copies), Level: LevelSuccess})
	return nil
}

// GetProgress returns how many actionable entries have completed out
// of the total. Safe to call from other goroutines while Run is
// executing.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.doneEntries), atomic.LoadInt32(&m.totalEntries)
}

func (m *Manager) planDirectory(ctx context.Context, dir string) (*Plan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	targetDir := model.ResolveTargetDir(dir, m.settings.Mode, m.settings.Placement, m.settings.TargetParent)
	release := &model.Release{
		SourceDir: dir,
		TargetDir: targetDir,
	}
	plan := &Plan{Source: dir, Release: release}

	newDir := m.settings.Placement == model.PlacementNewDir
	number := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		source := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			plan.Entries = append(plan.Entries, Entry{Source: source, Action: ActionSkip, Note: "directory"})
			continue
		}

		if flac.IsFLAC(entry.Name()) {
			tags, err := m.tags.ReadTags(source)
			if err != nil {
				return nil, fmt.Errorf("read tags of %s: %w", entry.Name(), err)
			}
			number++
			track := model.NewTrack(source, targetDir, number, tags)
			release.Tracks = append(release.Tracks, track)
			if tags.DiscNumber() > 1 {
				release.Multidisc = true
			}
			plan.Entries = append(plan.Entries, Entry{
				Source: source,
				Action: ActionConvert,
				Output: track.Output,
				Track:  track,
			})
			continue
		}

		if newDir {
			plan.Entries = append(plan.Entries, Entry{
				Source: source,
				Action: ActionCopy,
				Output: filepath.Join(targetDir, entry.Name()),
			})
		} else {
			plan.Entries = append(plan.Entries, Entry{Source: source, Action: ActionSkip, Note: "left in place"})
		}
	}

	m.findArtwork(release)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d FLAC files in %s", len(release.Tracks), filepath.Base(dir)), Level: LevelInfo})
	return plan, nil
}

func (m *Manager) planFile(path string) (*Plan, error) {
	if !flac.IsFLAC(path) {
		return nil, fmt.Errorf("%s is not a FLAC file", filepath.Base(path))
	}
	if m.settings.Placement == model.PlacementNewDir || m.settings.TargetParent != "" {
		return nil, errors.New("single file conversion writes next to the source; --new and --target do not apply")
	}

	tags, err := m.tags.ReadTags(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	release := &model.Release{
		SourceDir: dir,
		TargetDir: dir,
		Multidisc: tags.DiscNumber() > 1,
	}
	track := model.NewTrack(path, dir, 1, tags)
	release.Tracks = []*model.Track{track}

	if data, err := m.tags.ReadPicture(path); err == nil && len(data) > 0 {
		release.ArtworkSource = path
		release.ArtworkEmbedded = true
	}

	return &Plan{
		Source:     path,
		SingleFile: true,
		Release:    release,
		Entries: []Entry{{
			Source: path,
			Action: ActionConvert,
			Output: track.Output,
			Track:  track,
		}},
	}, nil
}

// artworkFileNames are checked in order inside the source directory
// before falling back to pictures embedded in the FLAC files.
var artworkFileNames = []string{"folder.jpg", "cover.jpg"}

func (m *Manager) findArtwork(release *model.Release) {
	for _, name := range artworkFileNames {
		candidate := filepath.Join(release.SourceDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			release.ArtworkSource = candidate
			return
		}
	}

	for _, track := range release.Tracks {
		data, err := m.tags.ReadPicture(track.Source)
		if err == nil && len(data) > 0 {
			release.ArtworkSource = track.Source
			release.ArtworkEmbedded = true
			m.log.Debug("artwork located", "source", track.Source, "embedded", true)
			return
		}
	}
}

// loadArtwork reads, resizes, and converts the release cover art.
// Artwork problems degrade to warnings; a run never fails over a
// missing or broken image.
func (m *Manager) loadArtwork(ctx context.Context, release *model.Release) ([]byte, string) {
	if !m.settings.SaveCoverArtInTags || !release.HasArtwork() {
		return nil, ""
	}

	var data []byte
	var err error
	if release.ArtworkEmbedded {
		data, err = m.tags.ReadPicture(release.ArtworkSource)
	} else {
		data, err = os.ReadFile(release.ArtworkSource)
	}
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading artwork from %s: %v", filepath.Base(release.ArtworkSource), err), Level: LevelWarning})
		return nil, ""
	}
	if len(data) == 0 {
		return nil, ""
	}

	if m.settings.CoverArtInTagsResize {
		resized, err := m.images.ResizeImage(ctx, data, m.settings.CoverArtInTagsMaxSize, m.settings.CoverArtInTagsMaxSize)
		if err == nil {
			return resized, "image/jpeg"
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error resizing artwork: %v", err), Level: LevelWarning})
	}

	if m.settings.ConvertCoverArtToJPG {
		converted, err := m.images.ConvertToJPEG(ctx, data)
		if err == nil {
			return converted, "image/jpeg"
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error converting artwork: %v", err), Level: LevelWarning})
	}

	mime := "image/jpeg"
	if detected, err := m.images.DetectMIME(data); err == nil {
		mime = detected
	}
	return data, mime
}

func (m *Manager) convertTrack(ctx context.Context, track *model.Track, tagCtx audio.TagContext, artwork []byte, artworkMime string) error {
	if _, err := os.Stat(track.Output); err == nil {
		if !m.settings.Force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", filepath.Base(track.Output))
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Converting: %s", filepath.Base(track.Source)), Level: LevelInfo})

	stem := strings.TrimSuffix(filepath.Base(track.Source), filepath.Ext(track.Source))
	wav, err := os.CreateTemp(filepath.Dir(track.Output), stem+"-*.wav")
	if err != nil {
		return fmt.Errorf("create temp wav: %w", err)
	}
	wavPath := wav.Name()
	wav.Close()
	defer os.Remove(wavPath)

	if err := m.decoder.Decode(ctx, track.Source, wavPath); err != nil {
		return err
	}

	if info, err := audio.ProbeWAV(wavPath); err == nil {
		track.Duration = info.Duration
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not probe %s: %v", filepath.Base(wavPath), err), Level: LevelVerbose})
	}

	if err := m.encoder.Encode(ctx, wavPath, track.Output, m.settings.Mode); err != nil {
		os.Remove(track.Output)
		return err
	}

	if m.settings.ModifyTags {
		if err := m.tagger.Apply(track.Output, track.Tags, tagCtx, artwork, artworkMime); err != nil {
			os.Remove(track.Output)
			return fmt.Errorf("tag %s: %w", filepath.Base(track.Output), err)
		}
		if missing, err := m.tagger.Verify(track.Output); err == nil && len(missing) > 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("%s is missing %s", filepath.Base(track.Output), strings.Join(missing, ", ")), Level: LevelWarning})
		}
	}

	return nil
}

func (m *Manager) writePlaylist(ctx context.Context, plan *Plan) {
	if plan.SingleFile {
		m.progress(ProgressEvent{Message: "Skipping playlist for single file conversion", Level: LevelVerbose})
		return
	}
	if len(plan.Release.Tracks) == 0 {
		return
	}

	release := plan.Release
	content := m.playlist.CreatePlaylist(release)
	if err := ioutils.WriteFile(ctx, release.PlaylistPath(), []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(release.PlaylistPath())), Level: LevelSuccess})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
