// Package synth builds short sound effects from oscillators so the game
// ships without audio files.
package synth

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate used for all generated clips.
const SampleRate = 44100

type Wave int

const (
	Sine Wave = iota
	Square
	Saw
)

// Note is one tone segment. Freq slides linearly to FreqEnd when set.
type Note struct {
	Wave     Wave
	Freq     float64
	FreqEnd  float64
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Gain     float64
}

// Samples renders the note as mono float samples in [-1, 1].
func (n Note) Samples() []float64 {
	count := int(n.Duration.Seconds() * SampleRate)
	if count <= 0 {
		return nil
	}
	end := n.FreqEnd
	if end == 0 {
		end = n.Freq
	}
	gain := n.Gain
	if gain == 0 {
		gain = 1
	}

	buf := make([]float64, count)
	phase := 0.0
	for i := range buf {
		t := float64(i) / float64(count)
		freq := n.Freq + (end-n.Freq)*t
		switch n.Wave {
		case Square:
			if phase < 0.5 {
				buf[i] = 1
			} else {
				buf[i] = -1
			}
		case Saw:
			buf[i] = 2 * (phase - 0.5)
		default:
			buf[i] = math.Sin(2 * math.Pi * phase)
		}
		buf[i] *= gain

		phase += freq / SampleRate
		if phase >= 1 {
			phase -= math.Floor(phase)
		}
	}
	envelope(buf, n.Attack, n.Release)
	return buf
}

// envelope applies a linear attack and release in place.
func envelope(buf []float64, attack, release time.Duration) {
	total := len(buf)
	a := int(attack.Seconds() * SampleRate)
	r := int(release.Seconds() * SampleRate)
	releaseStart := total - r
	if releaseStart < a {
		releaseStart = a
	}
	for i := range buf {
		vol := 1.0
		if i < a && a > 0 {
			vol = float64(i) / float64(a)
		} else if i >= releaseStart && r > 0 {
			vol = float64(total-i) / float64(r)
		}
		buf[i] *= vol
	}
}

// Sequence renders notes one after another.
func Sequence(notes ...Note) []float64 {
	var out []float64
	for _, n := range notes {
		out = append(out, n.Samples()...)
	}
	return out
}

// PCM16Stereo converts mono samples to 16-bit little-endian interleaved
// stereo, the format ebiten's audio players take from bytes.
func PCM16Stereo(samples []float64, volume float64) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		v := s * volume
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		pcm := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], pcm)
		binary.LittleEndian.PutUint16(out[i*4+2:], pcm)
	}
	return out
}
