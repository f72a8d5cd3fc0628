// Command pumpkin runs Hungry Pumpkin in a window or in the terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"chosenoffset.com/hungrypumpkin/internal/async"
	"chosenoffset.com/hungrypumpkin/internal/audio"
	"chosenoffset.com/hungrypumpkin/internal/catalog"
	"chosenoffset.com/hungrypumpkin/internal/config"
	"chosenoffset.com/hungrypumpkin/internal/game"
	"chosenoffset.com/hungrypumpkin/internal/render"
	ebitenrender "chosenoffset.com/hungrypumpkin/internal/render/ebiten"
	"chosenoffset.com/hungrypumpkin/internal/scene"
	"chosenoffset.com/hungrypumpkin/internal/speech"
	"chosenoffset.com/hungrypumpkin/internal/terminal"
	"chosenoffset.com/hungrypumpkin/internal/ui/hud"
)

var (
	configPath = flag.String("config", "pumpkin.yaml", "path to the YAML config file")
	frontend   = flag.String("frontend", "", "window or terminal (overrides the config)")
	seed       = flag.Int64("seed", 0, "random seed, 0 for the config value")
	debugLog   = flag.Bool("debug", false, "write logs to logs/pumpkin.log")
)

// frontendSetup is what a frontend provides to the game.
type frontendSetup struct {
	renderer render.Renderer
	input    render.InputManager
	engine   render.Engine
	chimer   audio.Chimer
	close    func()
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *frontend != "" {
		cfg.Window.Frontend = *frontend
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logFile := setupLogging(*debugLog, cfg.Window.Frontend == config.FrontendTerminal)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		log.Printf("Exiting: %v", err)
		fmt.Fprintf(os.Stderr, "pumpkin: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	foods := catalog.Default()
	if cfg.Game.Catalog != "" {
		loaded, err := catalog.Load(cfg.Game.Catalog)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		foods = loaded
	}

	var (
		fe  *frontendSetup
		err error
	)
	switch cfg.Window.Frontend {
	case config.FrontendTerminal:
		fe, err = newTerminalFrontend(cfg)
	default:
		fe, err = newWindowFrontend(cfg)
	}
	if err != nil {
		return err
	}
	defer fe.close()

	// Restore the terminal before a crash report reaches it.
	defer func() {
		if r := recover(); r != nil {
			fe.close()
			fmt.Fprintf(os.Stderr, "\nHUNGRY PUMPKIN CRASHED: %v\n%s\n", r, debug.Stack())
			os.Exit(2)
		}
	}()

	width, height := cfg.Window.Width, cfg.Window.Height
	clock := async.RealClock{}
	h := hud.New(nil, fe.renderer, width, height)
	speaker := speech.NewCaptioned(speech.FromConfig(cfg.Speech, clock), h.SetCaption)

	sc := scene.New(float64(width), float64(height))
	coordinator, err := game.NewCoordinator(cfg, sc, game.Deps{
		Catalog: foods,
		Speaker: speaker,
		Chimer:  fe.chimer,
		Clock:   clock,
	})
	if err != nil {
		return err
	}
	manager := game.NewManager(fe.renderer, fe.input, coordinator, h, cfg.Window.Title)

	fe.engine.SetWindowSize(width, height)
	fe.engine.SetWindowTitle(cfg.Window.Title)
	fe.engine.SetWindowResizable(true)

	log.Println("Starting game...")
	defer manager.Stop()
	return fe.engine.RunGame(manager)
}

func newWindowFrontend(cfg *config.Config) (*frontendSetup, error) {
	r, err := ebitenrender.NewRenderer(cfg.Font)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	var chimer audio.Chimer = audio.Silent{}
	if cfg.Audio.Enabled {
		chimer = audio.NewEbitenPlayer(cfg.Audio, async.RealClock{})
	}
	return &frontendSetup{
		renderer: r,
		input:    ebitenrender.NewInputManager(),
		engine:   ebitenrender.NewEngine(),
		chimer:   chimer,
		close:    func() {},
	}, nil
}

func newTerminalFrontend(cfg *config.Config) (*frontendSetup, error) {
	screen, err := terminal.Open()
	if err != nil {
		return nil, err
	}
	engine := terminal.NewEngine(screen, cfg.Window.Width, cfg.Window.Height)

	var chimer audio.Chimer = audio.Silent{}
	closeAudio := func() {}
	if cfg.Audio.Enabled {
		p, err := audio.NewSpeakerPlayer(cfg.Audio)
		if err != nil {
			log.Printf("Warning: audio disabled: %v", err)
		} else {
			chimer = p
			closeAudio = p.Close
		}
	}

	closed := false
	return &frontendSetup{
		renderer: terminal.NewRenderer(),
		input:    engine.Input,
		engine:   engine,
		chimer:   chimer,
		close: func() {
			if closed {
				return
			}
			closed = true
			screen.Fini()
			closeAudio()
		},
	}, nil
}
