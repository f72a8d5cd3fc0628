// Package config holds the game's tunables. Values are loaded from a YAML file
// on top of DefaultConfig, so a file only needs the keys it changes.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Error policies for failures inside a turn.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
	OnErrorRetry = "retry"
)

// Frontends.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// Config holds all game configuration
type Config struct {
	Window  WindowConfig `yaml:"window"`
	Timing  TimingConfig `yaml:"timing"`
	Motion  MotionConfig `yaml:"motion"`
	Layout  LayoutConfig `yaml:"layout"`
	Phrases PhraseConfig `yaml:"phrases"`
	Speech  SpeechConfig `yaml:"speech"`
	Audio   AudioConfig  `yaml:"audio"`
	Font    FontConfig   `yaml:"font"`
	Game    GameConfig   `yaml:"game"`
}

// WindowConfig describes the logical screen and the frontend showing it
type WindowConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	Frontend string `yaml:"frontend"` // "window" or "terminal"
}

// TimingConfig holds the pacing of the game
type TimingConfig struct {
	Tick       time.Duration `yaml:"tick"`        // Interval between animation steps
	IntroDelay time.Duration `yaml:"intro_delay"` // Pause before the pumpkin appears
}

// MotionConfig holds animation step sizes in pixels per tick
type MotionConfig struct {
	DefaultStep float64 `yaml:"default_step"`
	RejectStep  float64 `yaml:"reject_step"` // Used when a rejected food flies off screen
}

// RectConfig is a rectangle in logical pixels
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// LayoutConfig places the fixed regions of the screen
type LayoutConfig struct {
	Door        RectConfig `yaml:"door"`
	PumpkinArea RectConfig `yaml:"pumpkin_area"`
	ActiveArea  RectConfig `yaml:"active_food_area"`
	FoodArea    RectConfig `yaml:"food_area"`
	SlotGap     float64    `yaml:"slot_gap"`     // Horizontal gap between the four food slots
	FoodSize    float64    `yaml:"food_size"`    // Token size of foods
	PumpkinSize float64    `yaml:"pumpkin_size"` // Token size of the pumpkin
}

// PhraseConfig holds everything the pumpkin says
type PhraseConfig struct {
	Intro  string `yaml:"intro"`
	Prompt string `yaml:"prompt"` // Formatted with the food name
	Affirm string `yaml:"affirm"`
	Reject string `yaml:"reject"`
	Win    string `yaml:"win"`
}

// SpeechConfig selects the text-to-speech engine
type SpeechConfig struct {
	Engine     string        `yaml:"engine"`   // "auto", "none" or a tool name (espeak-ng, espeak, spd-say, say)
	Voice      string        `yaml:"voice"`    // Passed to the engine when set
	Rate       int           `yaml:"rate"`     // Words per minute, 0 for the engine default
	Required   bool          `yaml:"required"` // Fail instead of falling back to captions only
	CaptionWPM int           `yaml:"caption_wpm"`
	MinCaption time.Duration `yaml:"min_caption"` // Shortest time a caption-only line stays up
}

// AudioConfig controls the confirmation chirp
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// FontConfig selects fonts for the window frontend
type FontConfig struct {
	Path      string  `yaml:"path"`       // Text font, embedded Go Regular when empty
	EmojiPath string  `yaml:"emoji_path"` // Optional font with emoji glyphs
	Size      float64 `yaml:"size"`
}

// GameConfig holds the rules of a session
type GameConfig struct {
	Seed       int64  `yaml:"seed"`        // 0 picks a time-based seed
	OnError    string `yaml:"on_error"`    // "abort", "skip" or "retry"
	MaxRetries int    `yaml:"max_retries"` // Used by the retry policy
	WinScore   int    `yaml:"win_score"`   // 0 plays forever
	Catalog    string `yaml:"catalog"`     // Optional catalog file, built-in table when empty
}

// DefaultConfig returns the stock game settings
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:    960,
			Height:   640,
			Title:    "Hungry Pumpkin",
			Frontend: FrontendWindow,
		},
		Timing: TimingConfig{
			Tick:       50 * time.Millisecond,
			IntroDelay: 600 * time.Millisecond,
		},
		Motion: MotionConfig{
			DefaultStep: 10,
			RejectStep:  30,
		},
		Layout: LayoutConfig{
			Door:        RectConfig{X: 20, Y: 60, W: 100, H: 160},
			PumpkinArea: RectConfig{X: 380, Y: 40, W: 200, H: 180},
			ActiveArea:  RectConfig{X: 400, Y: 250, W: 160, H: 120},
			FoodArea:    RectConfig{X: 80, Y: 430, W: 800, H: 170},
			SlotGap:     20,
			FoodSize:    72,
			PumpkinSize: 120,
		},
		Phrases: PhraseConfig{
			Intro:  "I'm very hungry!",
			Prompt: "Give me the %s",
			Affirm: "Nom nom",
			Reject: "No, I don't want that!",
			Win:    "I'm full! Thank you!",
		},
		Speech: SpeechConfig{
			Engine:     "auto",
			CaptionWPM: 160,
			MinCaption: 900 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Font: FontConfig{
			Size: 22,
		},
		Game: GameConfig{
			OnError:    OnErrorAbort,
			MaxRetries: 3,
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the game cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	switch c.Window.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		errs = append(errs, fmt.Errorf("unknown frontend %q", c.Window.Frontend))
	}
	if c.Timing.Tick <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick must be positive, got %v", c.Timing.Tick))
	}
	if c.Timing.IntroDelay < 0 {
		errs = append(errs, fmt.Errorf("timing.intro_delay must not be negative, got %v", c.Timing.IntroDelay))
	}
	if !validStep(c.Motion.DefaultStep) || !validStep(c.Motion.RejectStep) {
		errs = append(errs, fmt.Errorf("motion steps must be positive and finite, got %v and %v", c.Motion.DefaultStep, c.Motion.RejectStep))
	}
	if c.Layout.FoodArea.W <= 3*c.Layout.SlotGap || c.Layout.FoodArea.H <= 0 {
		errs = append(errs, errors.New("layout.food_area is too small for four slots"))
	}
	switch c.Game.OnError {
	case OnErrorAbort, OnErrorSkip, OnErrorRetry:
	default:
		errs = append(errs, fmt.Errorf("unknown on_error policy %q", c.Game.OnError))
	}
	if c.Game.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("game.max_retries must not be negative, got %d", c.Game.MaxRetries))
	}
	if c.Game.WinScore < 0 {
		errs = append(errs, fmt.Errorf("game.win_score must not be negative, got %d", c.Game.WinScore))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %v", c.Audio.Volume))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}

	return errors.Join(errs...)
}

// validStep rejects zero, negative, NaN and infinite step sizes.
func validStep(step float64) bool {
	return step > 0 && !math.IsInf(step, 0)
}
