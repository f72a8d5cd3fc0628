package audio

import (
	"context"
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"chosenoffset.com/hungrypumpkin/internal/async"
	"chosenoffset.com/hungrypumpkin/internal/config"
)

// Chimer plays the confirmation chirp and returns once it has finished.
type Chimer interface {
	Chime(ctx context.Context) error
}

// Silent is used when no audio output is available. It returns at once.
type Silent struct{}

// Chime implements Chimer.
func (Silent) Chime(context.Context) error { return nil }

// EbitenPlayer plays the chirp through ebiten's audio context.
type EbitenPlayer struct {
	context *ebitenaudio.Context
	pcm     []byte
	clock   async.Clock
}

// NewEbitenPlayer renders the chirp once and reuses ebiten's audio context,
// creating it if needed.
func NewEbitenPlayer(cfg config.AudioConfig, clock async.Clock) *EbitenPlayer {
	ctx := ebitenaudio.CurrentContext()
	if ctx == nil {
		ctx = ebitenaudio.NewContext(cfg.SampleRate)
	}
	rate := beep.SampleRate(ctx.SampleRate())
	return &EbitenPlayer{
		context: ctx,
		pcm:     EncodePCM(NewChirp(cfg.Volume, rate)),
		clock:   clock,
	}
}

// Chime implements Chimer.
func (p *EbitenPlayer) Chime(ctx context.Context) error {
	player := p.context.NewPlayerFromBytes(p.pcm)
	player.Play()
	err := async.Delay(ctx, p.clock, ChirpDuration)
	if cerr := player.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close chirp player: %w", cerr)
	}
	return err
}

// SpeakerPlayer plays the chirp through beep's speaker, for frontends that do
// not run ebiten.
type SpeakerPlayer struct {
	volume float64
	rate   beep.SampleRate
}

// NewSpeakerPlayer initializes the speaker.
func NewSpeakerPlayer(cfg config.AudioConfig) (*SpeakerPlayer, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &SpeakerPlayer{volume: cfg.Volume, rate: rate}, nil
}

// Chime implements Chimer.
func (p *SpeakerPlayer) Chime(ctx context.Context) error {
	done := make(chan struct{})
	speaker.Play(beep.Seq(NewChirp(p.volume, p.rate), beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the speaker.
func (p *SpeakerPlayer) Close() {
	speaker.Close()
}
