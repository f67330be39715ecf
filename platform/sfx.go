package platform

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/slingcritter/platform/synth"
)

type Sound int

const (
	SoundLaunch Sound = iota
	SoundHit
	SoundBreak
	SoundWin
	SoundLose
)

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// ebiten allows one audio context per process.
func sharedContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(synth.SampleRate)
	})
	return audioContext
}

// Sfx plays the generated effects.
type Sfx struct {
	ctx    *audio.Context
	clips  map[Sound][]byte
	volume float64
	muted  bool
	logger *log.Logger
}

// NewSfx renders all clips up front.
func NewSfx(volume float64, muted bool) *Sfx {
	s := &Sfx{
		ctx:    sharedContext(),
		volume: volume,
		muted:  muted,
		logger: log.WithPrefix("sfx"),
	}
	s.render()
	return s
}

func (s *Sfx) render() {
	ms := time.Millisecond
	s.clips = map[Sound][]byte{
		SoundLaunch: synth.PCM16Stereo(synth.Note{
			Wave: synth.Saw, Freq: 220, FreqEnd: 660, Duration: 180 * ms, Attack: 5 * ms, Release: 60 * ms, Gain: 0.5,
		}.Samples(), 1),
		SoundHit: synth.PCM16Stereo(synth.Note{
			Wave: synth.Square, Freq: 160, FreqEnd: 90, Duration: 90 * ms, Attack: 2 * ms, Release: 40 * ms, Gain: 0.4,
		}.Samples(), 1),
		SoundBreak: synth.PCM16Stereo(synth.Note{
			Wave: synth.Saw, Freq: 120, FreqEnd: 60, Duration: 140 * ms, Attack: 2 * ms, Release: 80 * ms, Gain: 0.45,
		}.Samples(), 1),
		SoundWin: synth.PCM16Stereo(synth.Sequence(
			synth.Note{Freq: 523, Duration: 120 * ms, Attack: 5 * ms, Release: 30 * ms, Gain: 0.5},
			synth.Note{Freq: 659, Duration: 120 * ms, Attack: 5 * ms, Release: 30 * ms, Gain: 0.5},
			synth.Note{Freq: 784, Duration: 240 * ms, Attack: 5 * ms, Release: 120 * ms, Gain: 0.5},
		), 1),
		SoundLose: synth.PCM16Stereo(synth.Sequence(
			synth.Note{Freq: 392, Duration: 180 * ms, Attack: 5 * ms, Release: 40 * ms, Gain: 0.5},
			synth.Note{Freq: 262, Duration: 320 * ms, Attack: 5 * ms, Release: 160 * ms, Gain: 0.5},
		), 1),
	}
}

// Play starts a clip. Clips overlap freely.
func (s *Sfx) Play(snd Sound) {
	if s == nil || s.muted {
		return
	}
	b, ok := s.clips[snd]
	if !ok {
		return
	}
	p := s.ctx.NewPlayerFromBytes(b)
	p.SetVolume(s.volume)
	p.Play()
}

func (s *Sfx) Muted() bool {
	return s != nil && s.muted
}

func (s *Sfx) SetMuted(m bool) {
	if s == nil {
		return
	}
	s.muted = m
	s.logger.Debug("mute", "muted", m)
}

func (s *Sfx) SetVolume(v float64) {
	if s == nil {
		return
	}
	s.volume = v
}
