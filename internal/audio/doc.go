// Package audio provides audio file manipulation services including
// ID3 tag writing, playlist generation, and WAV header probing.
//
// # ID3 Tagging
//
// Use the Tagger to translate FLAC Vorbis comments into ID3v2 frames
// on a freshly encoded MP3:
//
//	tagger := audio.NewTagger()
//	err := tagger.Apply(mp3Path, tags, audio.TagContext{FlacCount: 12}, artworkBytes, "image/jpeg")
//
// The tagger maps:
//   - ARTIST, TITLE, ALBUM, GENRE to their standard frames
//   - DATE to TDRC plus a TYER year for older players
//   - TRACKNUMBER/TRACKTOTAL to a combined TRCK frame
//   - DISCNUMBER/DISCTOTAL to TPOS (multidisc releases only)
//   - COMMENT and LYRICS to COMM and USLT frames
//   - everything else to TXXX frames keyed by the Vorbis field name
//
// # Playlist Generation
//
// Generate an M3U playlist for a converted release:
//
//	creator := audio.NewPlaylistCreator(true) // extended M3U
//	content := creator.CreatePlaylist(release)
//	os.WriteFile(release.PlaylistPath(), []byte(content), 0644)
//
// # WAV Probing
//
// ProbeWAV reads the RIFF header of a decoded WAV file to recover the
// sample rate, channel count, and stream duration without decoding any
// audio. The duration feeds the #EXTINF lines of extended playlists.
package audio
