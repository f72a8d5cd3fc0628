package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"chosenoffset.com/hungrypumpkin/internal/geom"
	"chosenoffset.com/hungrypumpkin/internal/render"
	"chosenoffset.com/hungrypumpkin/internal/scene"
	"chosenoffset.com/hungrypumpkin/internal/ui/hud"
	"chosenoffset.com/hungrypumpkin/internal/ui/menu"
)

// TicksPerSecond is the update rate frontends are expected to drive.
const TicksPerSecond = 60

// Manager handles the overall game state, including the start screen and
// gameplay. It runs on the frontend's loop; the coordinator runs on its own
// goroutine and the two share only the scene.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        menu.GameState
	StartScreen  *menu.StartScreen
	HUD          *hud.HUD
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Scene        *scene.Scene
	Coordinator  *Coordinator

	cancel context.CancelFunc
	done   chan error
}

// NewManager creates a new game manager and routes the coordinator's
// callbacks to the HUD.
func NewManager(r render.Renderer, input render.InputManager, c *Coordinator, h *hud.HUD, title string) *Manager {
	width, height := c.scene.Size()
	m := &Manager{
		ScreenWidth:  int(width),
		ScreenHeight: int(height),
		State:        menu.StateStartScreen,
		StartScreen:  menu.NewStartScreen(title, r, input, int(width), int(height)),
		HUD:          h,
		Renderer:     r,
		InputMgr:     input,
		Scene:        c.scene,
		Coordinator:  c,
		done:         make(chan error, 1),
	}

	pumpkin := c.cfg.Layout.PumpkinArea
	h.SetCaptionAnchor(int(pumpkin.X+pumpkin.W)+10, int(pumpkin.Y)+20)
	c.OnScore = h.SetScore
	c.OnPhase = func(p Phase) {
		h.SetPhase(p.String())
		h.SetTurnNumber(c.State().Turn)
	}
	c.OnMessage = func(msg string) {
		h.AddMessage(msg, 4)
	}
	return m
}

// Start launches the coordinator.
func (m *Manager) Start() {
	if m.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.State = menu.StatePlaying
	log.Printf("Game started")
	go func() {
		m.done <- m.Coordinator.Run(ctx)
	}()
}

// Stop cancels the coordinator.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Update updates the game state.
func (m *Manager) Update() error {
	if m.InputMgr.IsKeyJustPressed(render.KeyEscape) || m.InputMgr.IsKeyJustPressed(render.KeyQ) {
		m.Stop()
		return render.ErrQuit
	}
	m.HUD.Update(1.0 / TicksPerSecond)

	switch m.State {
	case menu.StateStartScreen:
		if m.StartScreen.Update() {
			m.Start()
		}
	case menu.StatePlaying:
		if m.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
			x, y := m.InputMgr.GetCursorPosition()
			m.Click(float64(x), float64(y))
		}
		select {
		case err := <-m.done:
			return m.finish(err)
		default:
		}
	case menu.StateFinished:
		if m.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) || m.InputMgr.IsKeyJustPressed(render.KeySpace) {
			return render.ErrQuit
		}
	}
	return nil
}

// Click handles a click at a point in scene coordinates. Clicks outside food
// slots, or while the pumpkin is not waiting, do nothing.
func (m *Manager) Click(x, y float64) {
	slot, ok := m.Scene.SlotAt(geom.Point{X: x, Y: y})
	if !ok {
		return
	}
	if !m.Coordinator.Offer(slot) {
		log.Printf("Click on slot %d ignored, not waiting for a choice", slot)
	}
}

func (m *Manager) finish(err error) error {
	switch {
	case err == nil:
		m.State = menu.StateFinished
		log.Printf("Game won with score %d", m.Coordinator.Score())
		return nil
	case errors.Is(err, context.Canceled):
		return render.ErrQuit
	default:
		log.Printf("Game aborted: %v", err)
		return fmt.Errorf("game aborted: %w", err)
	}
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	switch m.State {
	case menu.StateStartScreen:
		m.StartScreen.Draw(screen)
	case menu.StatePlaying, menu.StateFinished:
		m.drawScene(screen)
		m.HUD.Draw(screen)
		if m.State == menu.StateFinished {
			m.drawFinished(screen)
		}
	}
}

// Layout keeps the logical screen size fixed; the engine scales it to the
// window.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
