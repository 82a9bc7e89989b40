// Package audio mixes the timeline's audio tracks down to a single PCM
// stream for export. Media decode stays out of process (ffmpeg), mixing and
// channel/rate conversion happen here.
package audio

import (
	"sync"

	"github.com/ivlev/clipforge/internal/timeline"
)

// Mixer accumulates all audible clips of a project into interleaved int16
// windows at the target sample rate and channel layout.
type Mixer struct {
	sampleRate int
	channels   int

	mu      sync.Mutex
	sources map[string]PCMSource // keyed by media id
}

func NewMixer(sampleRate, channels int) *Mixer {
	return &Mixer{
		sampleRate: sampleRate,
		channels:   channels,
		sources:    make(map[string]PCMSource),
	}
}

// Register binds a media id to a PCM source. Unregistered media mixes as
// silence, mirroring the compositor's placeholder policy.
func (m *Mixer) Register(mediaID string, src PCMSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[mediaID] = src
}

// Close releases every registered source.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var firstErr error
	for id, s := range m.sources {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.sources, id)
	}
	return firstErr
}

// MixWindow renders the window [start, start+duration) of the project's
// audio. Track solo wins over mute: when any track is soloed, only soloed
// tracks are audible.
func (m *Mixer) MixWindow(p *timeline.Project, start, duration float64) []int16 {
	frames := int(duration*float64(m.sampleRate) + 0.5)
	if frames <= 0 {
		return nil
	}
	n := frames * m.channels
	acc := make([]int32, n)
	window := make([]int16, n)

	anySolo := false
	for _, tr := range p.Timeline.Tracks {
		if tr.Type == timeline.TrackAudio && tr.Solo {
			anySolo = true
			break
		}
	}

	for _, tr := range p.Timeline.Tracks {
		if tr.Type != timeline.TrackAudio {
			continue
		}
		if anySolo && !tr.Solo {
			continue
		}
		if !anySolo && tr.Muted {
			continue
		}
		for _, clip := range tr.Clips {
			if clip.Media == nil || clip.Media.Muted {
				continue
			}
			m.mixClip(clip, start, duration, acc)
		}
	}

	for i, v := range acc {
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		window[i] = int16(v)
	}
	return window
}

func (m *Mixer) mixClip(clip *timeline.Clip, start, duration float64, acc []int32) {
	end := start + duration
	if clip.End() <= start || clip.StartTime >= end {
		return
	}
	m.mu.Lock()
	src := m.sources[clip.Media.MediaID]
	m.mu.Unlock()
	if src == nil {
		return
	}

	overlapStart := start
	if clip.StartTime > overlapStart {
		overlapStart = clip.StartTime
	}
	overlapEnd := end
	if clip.End() < overlapEnd {
		overlapEnd = clip.End()
	}
	frames := int((overlapEnd-overlapStart)*float64(m.sampleRate) + 0.5)
	if frames <= 0 {
		return
	}

	buf := make([]int16, frames*m.channels)
	srcTime := clip.Media.InPoint + (overlapStart - clip.StartTime)
	if err := src.Samples(srcTime, buf, m.sampleRate, m.channels); err != nil {
		return
	}

	gain := clip.Media.Volume
	offset := int((overlapStart-start)*float64(m.sampleRate)+0.5) * m.channels
	for i, s := range buf {
		j := offset + i
		if j >= len(acc) {
			break
		}
		acc[j] += int32(float64(s) * gain)
	}
}
