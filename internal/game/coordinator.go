package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/hungrypumpkin/internal/actor"
	"chosenoffset.com/hungrypumpkin/internal/async"
	"chosenoffset.com/hungrypumpkin/internal/audio"
	"chosenoffset.com/hungrypumpkin/internal/catalog"
	"chosenoffset.com/hungrypumpkin/internal/config"
	"chosenoffset.com/hungrypumpkin/internal/geom"
	"chosenoffset.com/hungrypumpkin/internal/scene"
	"chosenoffset.com/hungrypumpkin/internal/speech"
)

// ErrTooFewFoods is returned when the catalog cannot fill every slot with a
// distinct symbol.
var ErrTooFewFoods = errors.New("catalog has fewer distinct foods than slots")

// Deps are the outside capabilities the coordinator drives.
type Deps struct {
	Catalog *catalog.Catalog
	Speaker speech.Speaker
	Chimer  audio.Chimer
	Clock   async.Clock
	Rand    catalog.Rand // nil seeds one from the config
}

// Coordinator runs the game: the intro, then one turn after another.
type Coordinator struct {
	cfg     *config.Config
	scene   *scene.Scene
	layout  *Layout
	stage   *actor.Stage
	catalog *catalog.Catalog
	speaker speech.Speaker
	chimer  audio.Chimer
	clock   async.Clock
	rng     catalog.Rand
	choices async.Latch[int]
	labels  map[rune]string

	pumpkin *actor.Actor
	active  int // slot being resolved, -1 between turns

	mu    sync.RWMutex
	slots [SlotCount]Slot
	score int
	turn  int
	phase Phase

	// Callbacks, invoked on the coordinator goroutine
	OnPhase   func(p Phase)
	OnScore   func(score int)
	OnMessage func(msg string)
}

// NewCoordinator lays out sc and prepares a game. Missing deps fall back to
// the built-in catalog, caption-only speech, silence and the real clock.
func NewCoordinator(cfg *config.Config, sc *scene.Scene, deps Deps) (*Coordinator, error) {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Catalog.Distinct() < SlotCount {
		return nil, fmt.Errorf("%w: %d < %d", ErrTooFewFoods, deps.Catalog.Distinct(), SlotCount)
	}
	if deps.Clock == nil {
		deps.Clock = async.RealClock{}
	}
	if deps.Speaker == nil {
		deps.Speaker = speech.NewReader(deps.Clock, cfg.Speech.CaptionWPM, cfg.Speech.MinCaption)
	}
	if deps.Chimer == nil {
		deps.Chimer = audio.Silent{}
	}
	if deps.Rand == nil {
		seed := cfg.Game.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		log.Printf("Game: seed %d", seed)
		deps.Rand = rand.New(rand.NewSource(uint64(seed)))
	}

	layout := BuildLayout(sc, cfg.Layout)
	c := &Coordinator{
		cfg:     cfg,
		scene:   sc,
		layout:  layout,
		stage:   actor.NewStage(sc, deps.Clock, cfg.Timing.Tick),
		catalog: deps.Catalog,
		speaker: deps.Speaker,
		chimer:  deps.Chimer,
		clock:   deps.Clock,
		rng:     deps.Rand,
		labels:  map[rune]string{PumpkinGlyph: "pumpkin"},
		active:  -1,
	}
	for _, f := range deps.Catalog.Items() {
		if _, ok := c.labels[f.Symbol]; !ok {
			c.labels[f.Symbol] = f.Name
		}
	}
	for i := range c.slots {
		c.slots[i].Container = layout.Slots[i]
	}
	return c, nil
}

// Layout returns the containers the game was laid out with.
func (c *Coordinator) Layout() *Layout {
	return c.layout
}

// Label returns the name shown for a symbol when it cannot be drawn.
func (c *Coordinator) Label(glyph rune) string {
	return c.labels[glyph]
}

// Offer hands a clicked slot index to the coordinator. It reports whether the
// coordinator was waiting for a choice.
func (c *Coordinator) Offer(slot int) bool {
	return c.choices.Offer(slot)
}

// WaitingForChoice reports whether a click would be taken right now.
func (c *Coordinator) WaitingForChoice() bool {
	return c.choices.Armed()
}

// Phase returns the current phase.
func (c *Coordinator) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// Score returns the number of correct choices so far.
func (c *Coordinator) Score() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.score
}

// State returns a copy of the game state.
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{Slots: c.slots, Score: c.score, Turn: c.turn, Phase: c.phase}
}

// Run plays the intro and then turns until ctx is cancelled, the win score is
// reached or a failure aborts the game.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.intro(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if c.cfg.Game.OnError == config.OnErrorAbort {
			return fmt.Errorf("intro: %w", err)
		}
		c.notify(fmt.Sprintf("Warning: intro failed: %v", err))
		if c.pumpkin != nil && c.pumpkin.Place(actor.Element(c.layout.PumpkinArea)) == nil {
			_ = c.pumpkin.EnterContainer(actor.Element(c.layout.PumpkinArea))
		}
	}

	retries := 0
	for {
		if c.won() {
			c.setPhase(PhaseFinished)
			return c.say(ctx, c.cfg.Phrases.Win)
		}

		err := c.playTurn(ctx)
		if err == nil {
			retries = 0
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		turn := c.State().Turn
		switch c.cfg.Game.OnError {
		case config.OnErrorSkip:
			c.notify(fmt.Sprintf("Warning: skipping turn %d: %v", turn, err))
			if c.active >= 0 {
				c.clearSlot(c.active)
			}
		case config.OnErrorRetry:
			if retries >= c.cfg.Game.MaxRetries {
				return fmt.Errorf("turn %d failed after %d retries: %w", turn, retries, err)
			}
			retries++
			c.notify(fmt.Sprintf("Warning: retrying turn %d (%d/%d): %v", turn, retries, c.cfg.Game.MaxRetries, err))
			if c.active >= 0 {
				c.restore(c.active)
			}
		default:
			return fmt.Errorf("turn %d: %w", turn, err)
		}
	}
}

func (c *Coordinator) intro(ctx context.Context) error {
	c.setPhase(PhasePromptingIntro)
	if err := async.Delay(ctx, c.clock, c.cfg.Timing.IntroDelay); err != nil {
		return err
	}

	c.pumpkin = c.stage.New(PumpkinGlyph, StylePumpkin)
	if err := c.pumpkin.Place(actor.Element(c.layout.Door)); err != nil {
		return fmt.Errorf("place pumpkin: %w", err)
	}
	if err := c.say(ctx, c.cfg.Phrases.Intro); err != nil {
		return err
	}
	if err := c.pumpkin.AnimateTo(ctx, actor.Element(c.layout.PumpkinArea), c.cfg.Motion.DefaultStep); err != nil {
		return fmt.Errorf("move pumpkin: %w", err)
	}
	return nil
}

func (c *Coordinator) playTurn(ctx context.Context) error {
	c.active = -1
	c.mu.Lock()
	c.turn++
	c.mu.Unlock()

	choices := c.occupied()
	if len(choices) == 0 {
		c.setPhase(PhasePopulatingSlots)
		if err := c.populate(ctx); err != nil {
			return fmt.Errorf("populate: %w", err)
		}
		choices = c.occupied()
	}

	correct := choices[c.rng.Intn(len(choices))]
	c.setPhase(PhaseAwaitingChoice)
	if err := c.say(ctx, fmt.Sprintf(c.cfg.Phrases.Prompt, c.slot(correct).Food.Name)); err != nil {
		return err
	}

	choice, err := c.awaitChoice(ctx)
	if err != nil {
		return err
	}
	c.active = choice

	chosen := c.slot(choice).Actor
	if err := chosen.AnimateTo(ctx, actor.Element(c.layout.ActiveArea), c.cfg.Motion.DefaultStep); err != nil {
		return fmt.Errorf("move choice: %w", err)
	}

	if choice == correct {
		return c.accept(ctx, choice)
	}
	return c.reject(ctx, choice)
}

// populate fills every empty slot with a food whose symbol is not already on
// screen and slides all new foods up into their slots at once.
func (c *Coordinator) populate(ctx context.Context) error {
	held := make(map[rune]bool, SlotCount)
	for _, i := range c.occupied() {
		held[c.slot(i).Food.Symbol] = true
	}
	drop := c.bounds(c.layout.FoodArea).H

	var refilled []int
	for i := range SlotCount {
		if c.slot(i).Occupied() {
			continue
		}
		food := c.catalog.Random(c.rng)
		for held[food.Symbol] {
			food = c.catalog.Random(c.rng)
		}
		held[food.Symbol] = true

		a := c.stage.New(food.Symbol, StyleFood)
		c.mu.Lock()
		c.slots[i].Food = &food
		c.slots[i].Actor = a
		c.mu.Unlock()
		refilled = append(refilled, i)

		start := c.bounds(c.layout.Slots[i]).Center().Add(0, drop)
		if err := a.Place(actor.At(start)); err != nil {
			c.clearSlots(refilled)
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, i := range refilled {
		s := c.slot(i)
		g.Go(func() error {
			return s.Actor.AnimateTo(gctx, actor.Element(s.Container), c.cfg.Motion.DefaultStep)
		})
	}
	if err := g.Wait(); err != nil {
		c.clearSlots(refilled)
		return err
	}
	return nil
}

// awaitChoice blocks until an occupied slot is clicked.
func (c *Coordinator) awaitChoice(ctx context.Context) (int, error) {
	for {
		choice, err := c.choices.Wait(ctx)
		if err != nil {
			return -1, err
		}
		if choice >= 0 && choice < SlotCount && c.slot(choice).Occupied() {
			return choice, nil
		}
	}
}

func (c *Coordinator) accept(ctx context.Context, i int) error {
	c.setPhase(PhaseResolvingCorrect)
	if err := c.say(ctx, c.cfg.Phrases.Affirm); err != nil {
		return err
	}
	c.clearSlot(i)

	c.mu.Lock()
	c.score++
	score := c.score
	c.mu.Unlock()
	if c.OnScore != nil {
		c.OnScore(score)
	}

	if err := c.chimer.Chime(ctx); err != nil {
		return fmt.Errorf("chime: %w", err)
	}
	return nil
}

// reject sends the food off the right edge while the pumpkin complains.
func (c *Coordinator) reject(ctx context.Context, i int) error {
	c.setPhase(PhaseResolvingIncorrect)
	a := c.slot(i).Actor
	pos, ok := a.Position()
	if !ok {
		return actor.ErrUnresolvable
	}
	width, _ := c.scene.Size()
	target := rejectTarget(pos, width, c.bounds(c.layout.ActiveArea).W)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.say(gctx, c.cfg.Phrases.Reject)
	})
	g.Go(func() error {
		return a.AnimateTo(gctx, actor.At(target), c.cfg.Motion.RejectStep)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	c.clearSlot(i)
	return nil
}

// rejectTarget is a point past the right edge of the screen, level with pos.
func rejectTarget(pos geom.Point, screenWidth, activeWidth float64) geom.Point {
	return geom.Point{X: screenWidth + activeWidth, Y: pos.Y}
}

// restore puts a slot's food back into its container after a failed turn.
func (c *Coordinator) restore(i int) {
	s := c.slot(i)
	if !s.Occupied() {
		return
	}
	if err := s.Actor.Place(actor.Element(s.Container)); err != nil {
		c.clearSlot(i)
		return
	}
	if err := s.Actor.EnterContainer(actor.Element(s.Container)); err != nil {
		c.clearSlot(i)
	}
}

func (c *Coordinator) say(ctx context.Context, text string) error {
	if err := c.speaker.Speak(ctx, text); err != nil {
		return fmt.Errorf("speak %q: %w", text, err)
	}
	return nil
}

func (c *Coordinator) won() bool {
	return c.cfg.Game.WinScore > 0 && c.Score() >= c.cfg.Game.WinScore
}

func (c *Coordinator) occupied() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var idx []int
	for i, s := range c.slots {
		if s.Occupied() {
			idx = append(idx, i)
		}
	}
	return idx
}

func (c *Coordinator) slot(i int) Slot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slots[i]
}

func (c *Coordinator) clearSlot(i int) {
	c.mu.Lock()
	a := c.slots[i].Actor
	c.slots[i].Food = nil
	c.slots[i].Actor = nil
	c.mu.Unlock()
	if a != nil {
		a.Clear()
	}
}

func (c *Coordinator) clearSlots(idx []int) {
	for _, i := range idx {
		c.clearSlot(i)
	}
}

func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
	if c.OnPhase != nil {
		c.OnPhase(p)
	}
}

func (c *Coordinator) notify(msg string) {
	log.Println(msg)
	if c.OnMessage != nil {
		c.OnMessage(msg)
	}
}

// bounds returns the rectangle of a fixed container.
func (c *Coordinator) bounds(h scene.Handle) geom.Rect {
	r, _ := c.scene.Bounds(h)
	return r
}
