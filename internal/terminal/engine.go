package terminal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/hungrypumpkin/internal/render"
)

// Input implements render.InputManager from tcell events. Presses seen since
// the previous frame count as just pressed; terminals report no key releases,
// so a key is only ever held for the frame it arrived in.
type Input struct {
	mu      sync.Mutex
	canvas  *Canvas
	keys    map[render.Key]bool
	pending map[render.Key]bool
	button  bool
	clicked bool
	x, y    int
}

// NewInput creates an input manager that reports positions on canvas.
func NewInput(canvas *Canvas) *Input {
	return &Input{
		canvas:  canvas,
		keys:    make(map[render.Key]bool),
		pending: make(map[render.Key]bool),
	}
}

// HandleEvent records a tcell event. It reports whether the event asks to
// leave the game outright (Ctrl+C).
func (in *Input) HandleEvent(ev tcell.Event) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return true
		case tcell.KeyEscape:
			in.pending[render.KeyEscape] = true
		case tcell.KeyEnter:
			in.pending[render.KeyEnter] = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				in.pending[render.KeySpace] = true
			case 'q', 'Q':
				in.pending[render.KeyQ] = true
			}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := in.canvas.ToLogical(col, row)
		in.x, in.y = int(x), int(y)
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !in.button {
			in.clicked = true
		}
		in.button = down
	}
	return false
}

// Frame moves pending presses into the current frame.
func (in *Input) Frame() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.keys, in.pending = in.pending, in.keys
	clear(in.pending)
}

// EndFrame drops the frame's click once it has been seen.
func (in *Input) EndFrame() {
	in.mu.Lock()
	in.clicked = false
	in.mu.Unlock()
}

func (in *Input) IsKeyPressed(key render.Key) bool {
	return in.IsKeyJustPressed(key)
}

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keys[key]
}

func (in *Input) GetCursorPosition() (x, y int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.x, in.y
}

func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return button == render.MouseButtonLeft && in.button
}

func (in *Input) IsMouseButtonJustPressed(button render.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return button == render.MouseButtonLeft && in.clicked
}

// Engine implements render.Engine on a tcell screen. Window settings only
// apply to the title.
type Engine struct {
	Screen tcell.Screen
	Canvas *Canvas
	Input  *Input
	TPS    int
}

// NewEngine wraps an initialized screen for a game of the given logical size.
func NewEngine(screen tcell.Screen, width, height int) *Engine {
	canvas := NewCanvas(screen, width, height)
	screen.EnableMouse()
	screen.HideCursor()
	return &Engine{
		Screen: screen,
		Canvas: canvas,
		Input:  NewInput(canvas),
		TPS:    60,
	}
}

// Open creates and initializes the terminal screen.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	return screen, nil
}

func (e *Engine) SetWindowSize(width, height int) {}

func (e *Engine) SetWindowTitle(title string) {
	e.Screen.SetTitle(title)
}

func (e *Engine) SetWindowResizable(resizable bool) {}

// RunGame polls events on a separate goroutine and ticks the game until it
// returns an error, ErrQuit, or the user presses Ctrl+C. The screen is left
// open; the caller finalizes it.
func (e *Engine) RunGame(game render.Game) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := e.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	tps := e.TPS
	if tps <= 0 {
		tps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				e.Canvas.Resize()
				e.Screen.Sync()
				continue
			}
			if e.Input.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			done, err := e.Step(game)
			if done {
				return err
			}
		}
	}
}

// Step runs one update and draw. It reports whether the loop should end.
func (e *Engine) Step(game render.Game) (bool, error) {
	e.Input.Frame()
	err := game.Update()
	e.Input.EndFrame()
	if err != nil {
		if errors.Is(err, render.ErrQuit) {
			return true, nil
		}
		return true, err
	}
	e.Canvas.Clear()
	game.Draw(e.Canvas)
	e.Screen.Show()
	return false, nil
}
