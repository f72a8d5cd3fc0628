// Package audio synthesizes the short confirmation chirp played when the
// pumpkin gets the food it asked for, and plays it through whichever output
// the frontend provides.
package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Chirp shape: a sine sweeping up from A5 to C6, then holding.
const (
	ChirpFrom     = 880.0
	ChirpTo       = 1046.5
	ChirpRamp     = 50 * time.Millisecond
	ChirpDuration = 100 * time.Millisecond
	chirpAttack   = 5 * time.Millisecond
	chirpRelease  = 20 * time.Millisecond
)

// sweep is a sine oscillator whose frequency ramps exponentially
type sweep struct {
	from, to float64
	ramp     int
	duration int
	position int
	phase    float64
	rate     beep.SampleRate
}

// NewSweep creates a sine that glides from one frequency to another over ramp
// and keeps sounding at the final frequency until duration has elapsed.
func NewSweep(from, to float64, ramp, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		ramp:     rate.N(ramp),
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (s *sweep) frequency() float64 {
	if s.ramp <= 0 || s.position >= s.ramp {
		return s.to
	}
	progress := float64(s.position) / float64(s.ramp)
	return s.from * math.Pow(s.to/s.from, progress)
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.frequency() / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope fades a stream in and out to avoid clicks
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// NewChirp returns the confirmation chirp at the given volume.
func NewChirp(volume float64, rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(ChirpFrom, ChirpTo, ChirpRamp, ChirpDuration, rate)
	shaped := newEnvelope(osc, ChirpDuration, chirpAttack, chirpRelease, rate)
	return newVolume(shaped, volume)
}

// EncodePCM drains s into signed 16-bit little-endian stereo PCM.
func EncodePCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			var b [4]byte
			binary.LittleEndian.PutUint16(b[0:], uint16(toInt16(frame[0])))
			binary.LittleEndian.PutUint16(b[2:], uint16(toInt16(frame[1])))
			out = append(out, b[:]...)
		}
		if !ok {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}
