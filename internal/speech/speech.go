// Package speech gives the pumpkin a voice. Lines are spoken through a system
// text-to-speech tool when one is installed and always shown as captions.
// Every Speak call blocks until the line is finished.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"chosenoffset.com/hungrypumpkin/internal/async"
	"chosenoffset.com/hungrypumpkin/internal/config"
)

// ErrUnavailable is returned when no speech capability exists.
var ErrUnavailable = errors.New("speech synthesis unavailable")

// Speaker says a line and returns once it has been said.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Engine describes a command-line speech tool.
type Engine struct {
	Name string
	Path string
	args func(text, voice string, rate int) []string
}

// Args returns the command-line arguments used to say text.
func (e *Engine) Args(text, voice string, rate int) []string {
	return e.args(text, voice, rate)
}

type engineSpec struct {
	name string
	args func(text, voice string, rate int) []string
}

func espeakArgs(text, voice string, rate int) []string {
	var args []string
	if voice != "" {
		args = append(args, "-v", voice)
	}
	if rate > 0 {
		args = append(args, "-s", strconv.Itoa(rate))
	}
	return append(args, "--", text)
}

// Search order for "auto".
var engines = []engineSpec{
	{name: "espeak-ng", args: espeakArgs},
	{name: "espeak", args: espeakArgs},
	{name: "spd-say", args: func(text, voice string, rate int) []string {
		args := []string{"--wait"}
		if voice != "" {
			args = append(args, "--synthesis-voice", voice)
		}
		return append(args, "--", text)
	}},
	{name: "say", args: func(text, voice string, rate int) []string {
		var args []string
		if voice != "" {
			args = append(args, "-v", voice)
		}
		if rate > 0 {
			args = append(args, "-r", strconv.Itoa(rate))
		}
		return append(args, text)
	}},
}

// Detect finds a speech tool. preferred is "auto" (first tool found in
// search order), "none", or the name of a specific tool.
func Detect(preferred string) (*Engine, error) {
	if preferred == "none" {
		return nil, ErrUnavailable
	}
	for _, spec := range engines {
		if preferred != "auto" && preferred != "" && preferred != spec.name {
			continue
		}
		if path, err := exec.LookPath(spec.name); err == nil {
			return &Engine{Name: spec.name, Path: path, args: spec.args}, nil
		}
	}
	return nil, ErrUnavailable
}

// System speaks through an external tool.
type System struct {
	engine *Engine
	voice  string
	rate   int
}

// NewSystem creates a speaker for engine.
func NewSystem(engine *Engine, voice string, rate int) *System {
	return &System{engine: engine, voice: voice, rate: rate}
}

// Speak runs the tool and waits for it to exit. Cancelling ctx kills it.
func (s *System) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.engine.Path, s.engine.Args(text, s.voice, s.rate)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w", s.engine.Name, err)
	}
	return nil
}

// Reader stands in for a voice by waiting as long as it takes to read the
// caption.
type Reader struct {
	clock async.Clock
	wpm   int
	min   time.Duration
}

// NewReader creates a caption-only speaker reading at wpm words per minute.
func NewReader(clock async.Clock, wpm int, min time.Duration) *Reader {
	if wpm <= 0 {
		wpm = 160
	}
	return &Reader{clock: clock, wpm: wpm, min: min}
}

// Duration returns how long text stays up.
func (r *Reader) Duration(text string) time.Duration {
	words := len(strings.Fields(text))
	d := time.Duration(words) * time.Minute / time.Duration(r.wpm)
	if d < r.min {
		d = r.min
	}
	return d
}

// Speak implements Speaker.
func (r *Reader) Speak(ctx context.Context, text string) error {
	return async.Delay(ctx, r.clock, r.Duration(text))
}

// Unavailable fails every line with ErrUnavailable.
type Unavailable struct{}

// Speak implements Speaker.
func (Unavailable) Speak(context.Context, string) error {
	return ErrUnavailable
}

// Captioned shows each line through show while the wrapped speaker says it,
// and clears it afterwards.
type Captioned struct {
	next Speaker
	show func(text string)

	mu      sync.Mutex
	current int
}

// NewCaptioned wraps next with captions.
func NewCaptioned(next Speaker, show func(text string)) *Captioned {
	return &Captioned{next: next, show: show}
}

// Speak implements Speaker.
func (c *Captioned) Speak(ctx context.Context, text string) error {
	c.mu.Lock()
	c.current++
	id := c.current
	c.mu.Unlock()

	c.show(text)
	err := c.next.Speak(ctx, text)

	// A newer line owns the caption now.
	c.mu.Lock()
	if c.current == id {
		c.show("")
	}
	c.mu.Unlock()
	return err
}

// FromConfig builds the speaker described by cfg. Without a speech tool it
// falls back to timed captions, unless cfg.Required is set, in which case
// every line fails with ErrUnavailable.
func FromConfig(cfg config.SpeechConfig, clock async.Clock) Speaker {
	engine, err := Detect(cfg.Engine)
	if err == nil {
		log.Printf("Speech: using %s (%s)", engine.Name, engine.Path)
		return NewSystem(engine, cfg.Voice, cfg.Rate)
	}
	if cfg.Required {
		log.Printf("Warning: speech engine %q not available", cfg.Engine)
		return Unavailable{}
	}
	log.Printf("Speech: no engine for %q, showing captions only", cfg.Engine)
	return NewReader(clock, cfg.CaptionWPM, cfg.MinCaption)
}
