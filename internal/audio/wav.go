package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// WAVInfo describes the format header of a RIFF WAVE file.
type WAVInfo struct {
	// SampleRate in Hz, e.g. 44100.
	SampleRate int

	// Channels is the channel count, e.g. 2 for stereo.
	Channels int

	// Duration of the audio stream, derived from the data chunk size
	// and the byte rate. Zero when the byte rate is missing.
	Duration time.Duration
}

// ProbeWAV reads the RIFF header of the WAV file at path and derives
// the stream duration from the data chunk size and byte rate.
//
// Only the chunk headers are read; the audio samples themselves are
// skipped over. Chunks other than "fmt " and "data" (LIST, cue, etc.)
// are ignored.
//
// Example:
//
//	info, err := audio.ProbeWAV("/tmp/decoded.wav")
//	if err == nil {
//	    fmt.Printf("%d Hz, %s\n", info.SampleRate, info.Duration)
//	}
func ProbeWAV(path string) (WAVInfo, error) {
	var info WAVInfo

	f, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer f.Close()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return info, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return info, fmt.Errorf("%s is not a RIFF WAVE file", filepath.Base(path))
	}

	var byteRate, dataSize uint32
	var haveFmt, haveData bool

	for !haveFmt || !haveData {
		var header [8]byte
		if _, err := io.ReadFull(f, header[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return info, fmt.Errorf("read chunk header: %w", err)
		}

		id := string(header[0:4])
		size := binary.LittleEndian.Uint32(header[4:8])

		switch id {
		case "fmt ":
			if size < 16 {
				return info, fmt.Errorf("fmt chunk too small (%d bytes)", size)
			}
			var fields [16]byte
			if _, err := io.ReadFull(f, fields[:]); err != nil {
				return info, fmt.Errorf("read fmt chunk: %w", err)
			}
			info.Channels = int(binary.LittleEndian.Uint16(fields[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(fields[4:8]))
			byteRate = binary.LittleEndian.Uint32(fields[8:12])
			haveFmt = true
			if err := skipChunk(f, int64(size)-16, size%2 == 1); err != nil {
				return info, err
			}
		case "data":
			dataSize = size
			haveData = true
			if err := skipChunk(f, int64(size), size%2 == 1); err != nil {
				return info, err
			}
		default:
			if err := skipChunk(f, int64(size), size%2 == 1); err != nil {
				return info, err
			}
		}
	}

	if !haveFmt || !haveData {
		return info, fmt.Errorf("%s has an incomplete WAVE header", filepath.Base(path))
	}

	if byteRate > 0 {
		info.Duration = time.Duration(float64(dataSize) / float64(byteRate) * float64(time.Second))
	}
	return info, nil
}

// skipChunk seeks past the remaining bytes of a chunk, honoring the
// RIFF rule that odd-sized chunks are padded to an even byte count.
func skipChunk(f *os.File, remaining int64, padded bool) error {
	if padded {
		remaining++
	}
	if remaining <= 0 {
		return nil
	}
	if _, err := f.Seek(remaining, io.SeekCurrent); err != nil {
		return fmt.Errorf("skip chunk: %w", err)
	}
	return nil
}
