package waveform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
)

const pcmFormat = 1

// Decode reads a WAV stream into a playlist with a single clip spanning the
// whole track.
func Decode(r io.ReadSeeker, name string) (*Playlist, error) {
	dec := wav.NewDecoder(r)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("waveform: decode %s: %w", name, err)
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, fmt.Errorf("waveform: decode %s: missing format chunk", name)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	p := &Playlist{
		name:       name,
		data:       buf.Data,
		channels:   buf.Format.NumChannels,
		sampleRate: buf.Format.SampleRate,
		bitDepth:   depth,
	}
	if p.Frames() == 0 {
		return nil, fmt.Errorf("waveform: decode %s: track is empty", name)
	}
	p.clips = []Clip{{ID: uuid.NewString(), Name: name, Start: 0, End: p.Frames()}}
	return p, nil
}

// DecodeFile reads a WAV file into a playlist.
func DecodeFile(path string) (*Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("waveform: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, filepath.Base(path))
}

// ExportClip writes one clip as a standalone WAV stream.
func (p *Playlist) ExportClip(id string, w io.WriteSeeker) error {
	clip, err := p.Clip(id)
	if err != nil {
		return err
	}
	return p.encode(w, p.clipData(clip))
}

// ExportClipFile writes one clip as a standalone WAV file.
func (p *Playlist) ExportClipFile(id, path string) error {
	return p.exportFile(path, func(w io.WriteSeeker) error {
		return p.ExportClip(id, w)
	})
}

// ExportTimeline writes the remaining clips, concatenated in order, as a
// single WAV stream.
func (p *Playlist) ExportTimeline(w io.WriteSeeker) error {
	if len(p.clips) == 0 {
		return fmt.Errorf("waveform: timeline is empty")
	}
	return p.encode(w, p.timelineData())
}

// ExportTimelineFile writes the timeline as a WAV file.
func (p *Playlist) ExportTimelineFile(path string) error {
	return p.exportFile(path, p.ExportTimeline)
}

func (p *Playlist) encode(w io.WriteSeeker, data []int) error {
	enc := wav.NewEncoder(w, p.sampleRate, p.bitDepth, p.channels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: p.channels, SampleRate: p.sampleRate},
		Data:           data,
		SourceBitDepth: p.bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("waveform: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("waveform: encode: %w", err)
	}
	return nil
}

func (p *Playlist) exportFile(path string, write func(io.WriteSeeker) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("waveform: create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("waveform: close %s: %w", path, err)
	}
	return nil
}
