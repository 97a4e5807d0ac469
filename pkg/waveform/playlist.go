package waveform

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Clip is one labeled region of the decoded track. Start and End are frame
// offsets into the track, End exclusive.
type Clip struct {
	ID    string
	Name  string
	Start int
	End   int
}

// Frames returns the clip length in frames.
func (c Clip) Frames() int {
	return c.End - c.Start
}

// Playlist holds one decoded track and the clip sequence the user edits.
// The exported timeline is the concatenation of the remaining clips in
// order; deleting a clip removes its region from the timeline without
// touching the underlying track data.
type Playlist struct {
	name       string
	data       []int
	channels   int
	sampleRate int
	bitDepth   int
	clips      []Clip
}

// Name returns the source name the playlist was decoded from.
func (p *Playlist) Name() string { return p.name }

// SampleRate returns the track sample rate in Hz.
func (p *Playlist) SampleRate() int { return p.sampleRate }

// Channels returns the channel count.
func (p *Playlist) Channels() int { return p.channels }

// BitDepth returns the source bit depth.
func (p *Playlist) BitDepth() int { return p.bitDepth }

// Frames returns the total track length in frames.
func (p *Playlist) Frames() int {
	if p.channels == 0 {
		return 0
	}
	return len(p.data) / p.channels
}

// Duration returns the total track duration.
func (p *Playlist) Duration() time.Duration {
	if p.sampleRate == 0 {
		return 0
	}
	return time.Duration(p.Frames()) * time.Second / time.Duration(p.sampleRate)
}

// TimelineFrames returns the summed length of the remaining clips.
func (p *Playlist) TimelineFrames() int {
	total := 0
	for _, c := range p.clips {
		total += c.Frames()
	}
	return total
}

// Clips returns a copy of the current clip sequence.
func (p *Playlist) Clips() []Clip {
	return append([]Clip(nil), p.clips...)
}

// Clip returns the clip with the given id.
func (p *Playlist) Clip(id string) (Clip, error) {
	idx := p.clipIndex(id)
	if idx < 0 {
		return Clip{}, fmt.Errorf("waveform: clip %q not found", id)
	}
	return p.clips[idx], nil
}

// SplitAt divides a clip at the given frame offset (relative to the clip
// start). The left part keeps the clip's id and name; the right part gets a
// fresh id and the same name.
func (p *Playlist) SplitAt(id string, offset int) (left, right Clip, err error) {
	idx := p.clipIndex(id)
	if idx < 0 {
		return Clip{}, Clip{}, fmt.Errorf("waveform: clip %q not found", id)
	}
	clip := p.clips[idx]
	if offset <= 0 || offset >= clip.Frames() {
		return Clip{}, Clip{}, fmt.Errorf("waveform: split offset %d outside clip %q (1..%d)", offset, clip.Name, clip.Frames()-1)
	}

	left = Clip{ID: clip.ID, Name: clip.Name, Start: clip.Start, End: clip.Start + offset}
	right = Clip{ID: uuid.NewString(), Name: clip.Name, Start: clip.Start + offset, End: clip.End}

	p.clips[idx] = left
	p.clips = append(p.clips, Clip{})
	copy(p.clips[idx+2:], p.clips[idx+1:])
	p.clips[idx+1] = right
	return left, right, nil
}

// MergeWithNext joins a clip with its successor. The clips must be adjacent
// in the track so the merge cannot resurrect deleted audio.
func (p *Playlist) MergeWithNext(id string) (Clip, error) {
	idx := p.clipIndex(id)
	if idx < 0 {
		return Clip{}, fmt.Errorf("waveform: clip %q not found", id)
	}
	if idx+1 >= len(p.clips) {
		return Clip{}, fmt.Errorf("waveform: clip %q has no successor", p.clips[idx].Name)
	}
	cur, next := p.clips[idx], p.clips[idx+1]
	if cur.End != next.Start {
		return Clip{}, fmt.Errorf("waveform: clips %q and %q are not adjacent", cur.Name, next.Name)
	}

	merged := Clip{ID: cur.ID, Name: cur.Name, Start: cur.Start, End: next.End}
	p.clips[idx] = merged
	p.clips = append(p.clips[:idx+1], p.clips[idx+2:]...)
	return merged, nil
}

// Rename sets a clip's display name.
func (p *Playlist) Rename(id, name string) error {
	idx := p.clipIndex(id)
	if idx < 0 {
		return fmt.Errorf("waveform: clip %q not found", id)
	}
	if name == "" {
		return fmt.Errorf("waveform: clip name is required")
	}
	p.clips[idx].Name = name
	return nil
}

// Delete removes a clip's region from the timeline.
func (p *Playlist) Delete(id string) error {
	idx := p.clipIndex(id)
	if idx < 0 {
		return fmt.Errorf("waveform: clip %q not found", id)
	}
	p.clips = append(p.clips[:idx], p.clips[idx+1:]...)
	return nil
}

// Peaks buckets the timeline into the given number of columns and returns
// the normalized peak amplitude (0..1) per column, for terminal rendering.
func (p *Playlist) Peaks(buckets int) []float64 {
	if buckets <= 0 || p.channels == 0 {
		return nil
	}
	timeline := p.timelineData()
	frames := len(timeline) / p.channels
	if frames == 0 {
		return make([]float64, buckets)
	}

	limit := float64(int64(1) << (p.bitDepth - 1))
	if limit == 0 {
		limit = 1 << 15
	}

	out := make([]float64, buckets)
	for b := 0; b < buckets; b++ {
		lo := b * frames / buckets
		hi := (b + 1) * frames / buckets
		if hi <= lo {
			hi = lo + 1
		}
		peak := 0
		for f := lo; f < hi && f < frames; f++ {
			for ch := 0; ch < p.channels; ch++ {
				v := timeline[f*p.channels+ch]
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		out[b] = float64(peak) / limit
		if out[b] > 1 {
			out[b] = 1
		}
	}
	return out
}

func (p *Playlist) clipIndex(id string) int {
	for i, c := range p.clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (p *Playlist) clipData(c Clip) []int {
	return p.data[c.Start*p.channels : c.End*p.channels]
}

func (p *Playlist) timelineData() []int {
	out := make([]int, 0, p.TimelineFrames()*p.channels)
	for _, c := range p.clips {
		out = append(out, p.clipData(c)...)
	}
	return out
}
