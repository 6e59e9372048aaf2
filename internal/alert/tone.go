// Package alert provides the end-of-countdown signals: a synthesized beep
// played through the system audio device, the terminal bell, and a no-op.
package alert

import (
	"encoding/binary"
	"math"
	"time"
)

// Tone describes a sine beep with a fast attack and exponential decay.
type Tone struct {
	Frequency  float64       // Hz
	Duration   time.Duration // total length, including the silent tail
	Attack     time.Duration // ramp from Floor to Peak
	DecayEnd   time.Duration // ramp from Peak back to Tail ends here
	Floor      float64       // starting gain
	Peak       float64       // gain after the attack
	Tail       float64       // gain held after the decay
	SampleRate int
}

// DefaultTone is an 880 Hz beep lasting 0.4 s.
func DefaultTone(sampleRate int) Tone {
	return Tone{
		Frequency:  880,
		Duration:   400 * time.Millisecond,
		Attack:     10 * time.Millisecond,
		DecayEnd:   350 * time.Millisecond,
		Floor:      0.001,
		Peak:       0.2,
		Tail:       0.0001,
		SampleRate: sampleRate,
	}
}

// Samples returns the number of frames in the tone.
func (t Tone) Samples() int {
	return int(t.Duration.Seconds() * float64(t.SampleRate))
}

// Gain returns the envelope value at offset at.
func (t Tone) Gain(at time.Duration) float64 {
	switch {
	case at < 0:
		return t.Floor
	case at < t.Attack:
		return expRamp(t.Floor, t.Peak, at.Seconds()/t.Attack.Seconds())
	case at < t.DecayEnd:
		span := (t.DecayEnd - t.Attack).Seconds()
		return expRamp(t.Peak, t.Tail, (at - t.Attack).Seconds()/span)
	default:
		return t.Tail
	}
}

// expRamp interpolates exponentially from a to b as p goes from 0 to 1.
func expRamp(a, b, p float64) float64 {
	return a * math.Pow(b/a, p)
}

// PCM renders the tone as mono signed 16-bit little-endian samples, scaled
// by volume in [0, 1].
func (t Tone) PCM(volume float64) []byte {
	volume = math.Max(0, math.Min(1, volume))
	n := t.Samples()
	out := make([]byte, 2*n)
	rate := float64(t.SampleRate)

	for i := 0; i < n; i++ {
		sec := float64(i) / rate
		at := time.Duration(sec * float64(time.Second))
		v := math.Sin(2*math.Pi*t.Frequency*sec) * t.Gain(at) * volume
		s := int16(math.Round(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}
