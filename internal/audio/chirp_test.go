package audio

import (
	"context"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestSweepLength(t *testing.T) {
	samples := drain(NewSweep(ChirpFrom, ChirpTo, ChirpRamp, ChirpDuration, testRate))
	if want := testRate.N(ChirpDuration); len(samples) != want {
		t.Errorf("Expected %d samples, got %d", want, len(samples))
	}
}

func TestSweepFrequencyRamp(t *testing.T) {
	s := NewSweep(ChirpFrom, ChirpTo, ChirpRamp, ChirpDuration, testRate).(*sweep)
	if f := s.frequency(); f != ChirpFrom {
		t.Errorf("Expected start frequency %v, got %v", ChirpFrom, f)
	}
	s.position = s.ramp / 2
	if f := s.frequency(); f <= ChirpFrom || f >= ChirpTo {
		t.Errorf("Expected mid-ramp frequency between %v and %v, got %v", ChirpFrom, ChirpTo, f)
	}
	s.position = s.ramp
	if f := s.frequency(); f != ChirpTo {
		t.Errorf("Expected end frequency %v, got %v", ChirpTo, f)
	}
}

func TestChirpSampleRange(t *testing.T) {
	samples := drain(NewChirp(0.5, testRate))
	if len(samples) == 0 {
		t.Fatal("Expected samples")
	}
	for i, frame := range samples {
		for ch, v := range frame {
			if v < -0.5001 || v > 0.5001 {
				t.Fatalf("Sample %d channel %d out of range: %v", i, ch, v)
			}
		}
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected the envelope to start silent, got %v", samples[0][0])
	}
}

func TestChirpZeroVolumeIsSilent(t *testing.T) {
	for i, frame := range drain(NewChirp(0, testRate)) {
		if frame[0] != 0 || frame[1] != 0 {
			t.Fatalf("Expected silence at sample %d, got %v", i, frame)
		}
	}
}

func TestEncodePCM(t *testing.T) {
	pcm := EncodePCM(NewChirp(1, testRate))
	if want := testRate.N(ChirpDuration) * 4; len(pcm) != want {
		t.Errorf("Expected %d bytes, got %d", want, len(pcm))
	}
}

func TestToInt16Clamps(t *testing.T) {
	if got := toInt16(2); got != 32767 {
		t.Errorf("Expected 32767, got %d", got)
	}
	if got := toInt16(-2); got != -32767 {
		t.Errorf("Expected -32767, got %d", got)
	}
	if got := toInt16(0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestSilentChime(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := (Silent{}).Chime(ctx); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
