// Package hud draws the score panel, the pumpkin's speech caption and short
// status messages on top of the scene.
package hud

import (
	"fmt"
	"image/color"
	"sync"

	"chosenoffset.com/hungrypumpkin/internal/render"
)

// HUDConfig defines what to display in the HUD
type HUDConfig struct {
	ShowScore bool    `yaml:"show_score"`
	ShowTurn  bool    `yaml:"show_turn"`
	ShowPhase bool    `yaml:"show_phase"` // Useful while debugging the turn loop
	Position  string  `yaml:"position"`   // "top-left", "top-right", "bottom-left", "bottom-right"
	Opacity   float64 `yaml:"opacity"`    // Background opacity (0-1)
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *HUDConfig {
	return &HUDConfig{
		ShowScore: true,
		ShowTurn:  true,
		ShowPhase: false,
		Position:  "top-right",
		Opacity:   0.7,
	}
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// HUD manages the heads-up display. Setters may be called from any goroutine.
type HUD struct {
	config       *HUDConfig
	renderer     render.Renderer
	screenWidth  int
	screenHeight int

	mu       sync.Mutex
	score    int
	turn     int
	phase    string
	caption  string
	captionX int
	captionY int
	messages []Message

	// Cached layout
	panelWidth  int
	panelHeight int
}

// New creates a new HUD with the given configuration
func New(config *HUDConfig, r render.Renderer, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:       config,
		renderer:     r,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		panelWidth:   160,
		captionX:     screenWidth / 2,
		captionY:     10,
	}
}

// SetScore updates the displayed score
func (h *HUD) SetScore(score int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.score = score
}

// SetTurnNumber updates the displayed turn number
func (h *HUD) SetTurnNumber(turn int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turn = turn
}

// SetPhase updates the displayed phase name
func (h *HUD) SetPhase(phase string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.phase = phase
}

// SetCaption shows what the pumpkin is saying. An empty string hides it.
func (h *HUD) SetCaption(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.caption = text
}

// Caption returns the caption currently shown.
func (h *HUD) Caption() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.caption
}

// SetCaptionAnchor places the caption bubble's top-left corner.
func (h *HUD) SetCaptionAnchor(x, y int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.captionX, h.captionY = x, y
}

// AddMessage shows text for the given number of seconds. At most four
// messages are kept.
func (h *HUD) AddMessage(text string, seconds float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, Message{Text: text, TimeLeft: seconds, MaxTime: seconds})
	if len(h.messages) > 4 {
		h.messages = h.messages[len(h.messages)-4:]
	}
}

// Messages returns the messages still on screen.
func (h *HUD) Messages() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Message(nil), h.messages...)
}

// Update ages messages by dt seconds and drops expired ones.
func (h *HUD) Update(dt float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.messages[:0]
	for _, m := range h.messages {
		m.TimeLeft -= dt
		if m.TimeLeft > 0 {
			kept = append(kept, m)
		}
	}
	h.messages = kept
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.screenWidth = width
	h.screenHeight = height
}

// Draw renders the HUD to the screen
func (h *HUD) Draw(screen render.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.drawPanel(screen)
	h.drawCaption(screen)
	h.drawMessages(screen)
}

func (h *HUD) drawPanel(screen render.Image) {
	lines := h.panelLines()
	if len(lines) == 0 {
		return
	}
	h.panelHeight = 16 + len(lines)*20
	x, y := h.calculatePosition()

	alpha := uint8(h.config.Opacity * 255)
	h.renderer.FillRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(h.panelHeight), color.RGBA{20, 20, 30, alpha})
	h.renderer.StrokeRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(h.panelHeight), 1, color.RGBA{60, 60, 80, alpha})

	currentY := y + 8
	for _, line := range lines {
		h.renderer.DrawText(screen, line.text, x+10, currentY, line.color, 0.8)
		currentY += 20
	}
}

type panelLine struct {
	text  string
	color color.Color
}

func (h *HUD) panelLines() []panelLine {
	var lines []panelLine
	if h.config.ShowScore {
		lines = append(lines, panelLine{fmt.Sprintf("Score: %d", h.score), color.RGBA{255, 220, 120, 255}})
	}
	if h.config.ShowTurn {
		lines = append(lines, panelLine{fmt.Sprintf("Turn: %d", h.turn), color.RGBA{180, 180, 180, 255}})
	}
	if h.config.ShowPhase && h.phase != "" {
		lines = append(lines, panelLine{h.phase, color.RGBA{150, 150, 150, 255}})
	}
	return lines
}

// calculatePosition returns the top-left corner of the HUD panel
func (h *HUD) calculatePosition() (int, int) {
	padding := 10

	switch h.config.Position {
	case "top-left":
		return padding, padding
	case "bottom-left":
		return padding, h.screenHeight - h.panelHeight - padding
	case "bottom-right":
		return h.screenWidth - h.panelWidth - padding, h.screenHeight - h.panelHeight - padding
	default: // "top-right"
		return h.screenWidth - h.panelWidth - padding, padding
	}
}

// drawCaption draws the speech bubble
func (h *HUD) drawCaption(screen render.Image) {
	if h.caption == "" {
		return
	}
	w, th := h.renderer.MeasureText(h.caption, 1.0)
	padding := 10
	bx, by := h.captionX, h.captionY
	if maxX := h.screenWidth - w - 2*padding - 4; bx > maxX {
		bx = maxX
	}

	h.renderer.FillRect(screen, float32(bx), float32(by), float32(w+2*padding), float32(th+2*padding), color.RGBA{250, 245, 230, 235})
	h.renderer.StrokeRect(screen, float32(bx), float32(by), float32(w+2*padding), float32(th+2*padding), 2, color.RGBA{120, 70, 20, 255})
	h.renderer.DrawText(screen, h.caption, bx+padding, by+padding, color.RGBA{40, 25, 10, 255}, 1.0)
}

// drawMessages draws status messages along the bottom edge, fading out
func (h *HUD) drawMessages(screen render.Image) {
	y := h.screenHeight - 24
	for i := len(h.messages) - 1; i >= 0; i-- {
		m := h.messages[i]
		alpha := uint8(255)
		if m.MaxTime > 0 && m.TimeLeft < 1 {
			alpha = uint8(255 * m.TimeLeft)
		}
		h.renderer.DrawText(screen, m.Text, 10, y, color.RGBA{255, 160, 120, alpha}, 0.7)
		y -= 18
	}
}
