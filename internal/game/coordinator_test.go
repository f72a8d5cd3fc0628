package game

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chosenoffset.com/hungrypumpkin/internal/actor"
	"chosenoffset.com/hungrypumpkin/internal/async"
	"chosenoffset.com/hungrypumpkin/internal/catalog"
	"chosenoffset.com/hungrypumpkin/internal/config"
	"chosenoffset.com/hungrypumpkin/internal/geom"
	"chosenoffset.com/hungrypumpkin/internal/scene"
	"chosenoffset.com/hungrypumpkin/internal/tween"
)

var errSpeech = errors.New("speech failed")

var testFoods = []catalog.Food{
	{Symbol: 0x1F34E, Name: "apple"},
	{Symbol: 0x1F34C, Name: "banana"},
	{Symbol: 0x1F352, Name: "cherries"},
	{Symbol: 0x1F347, Name: "grapes"},
}

// seqRand returns its values in order, wrapping around.
type seqRand struct {
	mu   sync.Mutex
	vals []int
	next int
}

func (r *seqRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.vals[r.next%len(r.vals)]
	r.next++
	return v % n
}

type fakeSpeaker struct {
	mu      sync.Mutex
	lines   []string
	failOn  func(text string) bool
	prompts chan string
}

func newFakeSpeaker() *fakeSpeaker {
	return &fakeSpeaker{prompts: make(chan string, 64)}
}

func (f *fakeSpeaker) Speak(ctx context.Context, text string) error {
	f.mu.Lock()
	f.lines = append(f.lines, text)
	fail := f.failOn != nil && f.failOn(text)
	f.mu.Unlock()

	if fail {
		return errSpeech
	}
	if name, ok := strings.CutPrefix(text, "Give me the "); ok {
		f.prompts <- name
	}
	return nil
}

func (f *fakeSpeaker) said(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, l := range f.lines {
		if l == text {
			n++
		}
	}
	return n
}

func (f *fakeSpeaker) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lines) == 0 {
		return ""
	}
	return f.lines[len(f.lines)-1]
}

type fakeChimer struct {
	calls atomic.Int32
}

func (f *fakeChimer) Chime(context.Context) error {
	f.calls.Add(1)
	return nil
}

type harness struct {
	c       *Coordinator
	scene   *scene.Scene
	speaker *fakeSpeaker
	chimer  *fakeChimer

	mu       sync.Mutex
	messages []string
	scores   []int
}

func newHarness(t *testing.T, configure func(*config.Config)) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	if configure != nil {
		configure(cfg)
	}
	cat, err := catalog.New(testFoods)
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}

	h := &harness{
		scene:   scene.New(float64(cfg.Window.Width), float64(cfg.Window.Height)),
		speaker: newFakeSpeaker(),
		chimer:  &fakeChimer{},
	}
	h.c, err = NewCoordinator(cfg, h.scene, Deps{
		Catalog: cat,
		Speaker: h.speaker,
		Chimer:  h.chimer,
		Clock:   async.InstantClock{},
		Rand:    &seqRand{vals: []int{0, 1, 2, 3, 0}},
	})
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	h.c.OnMessage = func(msg string) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.messages = append(h.messages, msg)
	}
	h.c.OnScore = func(score int) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.scores = append(h.scores, score)
	}
	return h
}

// play answers each prompt with the slot pick returns. A negative slot stops
// answering and cancels the game.
func (h *harness) play(ctx context.Context, cancel context.CancelFunc, pick func(name string, st State) []int) {
	for {
		select {
		case <-ctx.Done():
			return
		case name := <-h.speaker.prompts:
			for _, slot := range pick(name, h.c.State()) {
				if slot < 0 {
					cancel()
					return
				}
				h.click(ctx, slot)
			}
		}
	}
}

// click offers slot once the coordinator is listening.
func (h *harness) click(ctx context.Context, slot int) {
	for ctx.Err() == nil {
		if h.c.Offer(slot) {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (h *harness) run(t *testing.T, pick func(name string, st State) []int) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go h.play(ctx, cancel, pick)
	err := h.c.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("Game did not finish in time")
	}
	return err
}

func (h *harness) hasMessage(part string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range h.messages {
		if strings.Contains(m, part) {
			return true
		}
	}
	return false
}

func slotOf(name string, st State) int {
	for i, s := range st.Slots {
		if s.Occupied() && s.Food.Name == name {
			return i
		}
	}
	return -1
}

func pickCorrect(name string, st State) []int {
	return []int{slotOf(name, st)}
}

func TestPopulateFillsDistinctSlots(t *testing.T) {
	h := newHarness(t, nil)
	// The repeated 0 forces a resample on collision.
	h.c.rng = &seqRand{vals: []int{0, 0, 1, 2, 3}}

	if err := h.c.populate(context.Background()); err != nil {
		t.Fatalf("populate failed: %v", err)
	}

	st := h.c.State()
	seen := make(map[rune]bool)
	for i, s := range st.Slots {
		if !s.Occupied() || s.Actor == nil {
			t.Fatalf("Expected slot %d to be occupied with an actor", i)
		}
		if seen[s.Food.Symbol] {
			t.Errorf("Duplicate symbol %c in slot %d", s.Food.Symbol, i)
		}
		seen[s.Food.Symbol] = true

		if !s.Actor.InContainer() {
			t.Errorf("Expected slot %d actor to have joined its container", i)
		}
		if parent, _ := h.scene.Parent(s.Actor.Handle()); parent != s.Container {
			t.Errorf("Expected slot %d actor parented to its container", i)
		}
		want, _ := h.scene.Bounds(s.Container)
		got, _ := s.Actor.Position()
		if got != want.Center() {
			t.Errorf("Expected slot %d actor at %v, got %v", i, want.Center(), got)
		}
	}
}

func TestPopulateKeepsOccupiedSlots(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	if err := h.c.populate(ctx); err != nil {
		t.Fatalf("populate failed: %v", err)
	}
	kept := h.c.State().Slots[1]
	h.c.clearSlot(0)
	h.c.clearSlot(2)
	h.c.clearSlot(3)

	if err := h.c.populate(ctx); err != nil {
		t.Fatalf("populate failed: %v", err)
	}
	st := h.c.State()
	if st.Slots[1].Actor != kept.Actor {
		t.Error("Expected the occupied slot to keep its actor")
	}
	for i, s := range st.Slots {
		if i != 1 && s.Food.Symbol == kept.Food.Symbol {
			t.Errorf("Slot %d repeats the kept symbol %c", i, kept.Food.Symbol)
		}
	}
}

func TestIntroMovesPumpkinToArea(t *testing.T) {
	h := newHarness(t, nil)
	err := h.run(t, func(string, State) []int { return []int{-1} })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	if h.speaker.said(h.c.cfg.Phrases.Intro) != 1 {
		t.Error("Expected the intro line to be spoken once")
	}
	if !h.c.pumpkin.InContainer() {
		t.Error("Expected the pumpkin to sit in the pumpkin area")
	}
	if parent, _ := h.scene.Parent(h.c.pumpkin.Handle()); parent != h.c.layout.PumpkinArea {
		t.Error("Expected the pumpkin parented to the pumpkin area")
	}
}

func TestCorrectChoiceScores(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) { cfg.Game.WinScore = 1 })

	var chosen *actor.Actor
	err := h.run(t, func(name string, st State) []int {
		slot := slotOf(name, st)
		chosen = st.Slots[slot].Actor
		return []int{slot}
	})
	if err != nil {
		t.Fatalf("Expected the game to be won, got %v", err)
	}

	if h.c.Score() != 1 {
		t.Errorf("Expected score 1, got %d", h.c.Score())
	}
	if len(h.scores) != 1 || h.scores[0] != 1 {
		t.Errorf("Expected OnScore(1), got %v", h.scores)
	}
	if h.chimer.calls.Load() != 1 {
		t.Errorf("Expected one chime, got %d", h.chimer.calls.Load())
	}
	if h.speaker.said(h.c.cfg.Phrases.Affirm) != 1 {
		t.Error("Expected the affirmation to be spoken")
	}
	if !chosen.Cleared() {
		t.Error("Expected the eaten food to be cleared")
	}

	st := h.c.State()
	if st.Slots[0].Occupied() {
		t.Error("Expected slot 0 to be empty")
	}
	for i := 1; i < SlotCount; i++ {
		if !st.Slots[i].Occupied() {
			t.Errorf("Expected slot %d to stay occupied", i)
		}
	}
}

func TestWrongChoiceRejects(t *testing.T) {
	h := newHarness(t, nil)

	var rejected *actor.Actor
	prompts := 0
	err := h.run(t, func(name string, st State) []int {
		prompts++
		if prompts > 1 {
			return []int{-1}
		}
		if slotOf(name, st) != 0 {
			t.Errorf("Expected slot 0 to be asked for, got %q", name)
		}
		rejected = st.Slots[2].Actor
		return []int{2}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	if h.speaker.said(h.c.cfg.Phrases.Reject) != 1 {
		t.Error("Expected the rejection to be spoken")
	}
	if h.c.Score() != 0 || h.chimer.calls.Load() != 0 {
		t.Errorf("Expected no score and no chime, got %d and %d", h.c.Score(), h.chimer.calls.Load())
	}
	if !rejected.Cleared() {
		t.Error("Expected the rejected food to be cleared")
	}
	if h.scene.Exists(rejected.Handle()) {
		t.Error("Expected the rejected token to be removed from the scene")
	}

	st := h.c.State()
	if st.Slots[2].Occupied() {
		t.Error("Expected slot 2 to be empty")
	}
	if !st.Slots[0].Occupied() || st.Slots[0].Food.Name != "apple" {
		t.Error("Expected slot 0 to keep the apple")
	}
	if prompts != 2 {
		t.Errorf("Expected a second turn to start, got %d prompts", prompts)
	}
}

// overlapClock fires at once. Once armed it counts waits, and the first wait
// holds until the rejection has started being spoken.
type overlapClock struct {
	mu       sync.Mutex
	armed    bool
	calls    int
	missed   bool
	once     sync.Once
	ticked   chan struct{}
	speaking chan struct{}
}

func (c *overlapClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()

	c.mu.Lock()
	armed := c.armed
	if armed {
		c.calls++
	}
	c.mu.Unlock()
	if !armed {
		return ch
	}

	c.once.Do(func() { close(c.ticked) })
	select {
	case <-c.speaking:
	case <-time.After(2 * time.Second):
		c.mu.Lock()
		c.missed = true
		c.mu.Unlock()
	}
	return ch
}

// overlapSpeaker finishes the rejection only after the animation has ticked.
type overlapSpeaker struct {
	reject string
	clock  *overlapClock
	once   sync.Once
}

func (s *overlapSpeaker) Speak(ctx context.Context, text string) error {
	if text != s.reject {
		return nil
	}
	s.once.Do(func() { close(s.clock.speaking) })
	select {
	case <-s.clock.ticked:
		return nil
	case <-time.After(2 * time.Second):
		return errors.New("no animation tick while the rejection was spoken")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestRejectSpeaksWhileFlyingOffAtRejectStep(t *testing.T) {
	cfg := config.DefaultConfig()
	cat, err := catalog.New(testFoods)
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	clock := &overlapClock{ticked: make(chan struct{}), speaking: make(chan struct{})}
	sc := scene.New(float64(cfg.Window.Width), float64(cfg.Window.Height))
	c, err := NewCoordinator(cfg, sc, Deps{
		Catalog: cat,
		Speaker: &overlapSpeaker{reject: cfg.Phrases.Reject, clock: clock},
		Clock:   clock,
		Rand:    &seqRand{vals: []int{0, 1, 2, 3}},
	})
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.populate(ctx); err != nil {
		t.Fatalf("populate failed: %v", err)
	}

	rejected := c.slot(2).Actor
	start, _ := rejected.Position()
	width, _ := sc.Size()
	target := rejectTarget(start, width, cfg.Layout.ActiveArea.W)

	clock.mu.Lock()
	clock.armed = true
	clock.mu.Unlock()

	if err := c.reject(ctx, 2); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	clock.mu.Lock()
	calls, missed := clock.calls, clock.missed
	clock.mu.Unlock()
	if missed {
		t.Error("Expected the animation to run while the rejection was spoken")
	}
	expected := tween.Steps(target.X-start.X, cfg.Motion.RejectStep) - 1
	if calls != expected {
		t.Errorf("Expected %d ticks at step %v, got %d", expected, cfg.Motion.RejectStep, calls)
	}
	if expected == tween.Steps(target.X-start.X, cfg.Motion.DefaultStep)-1 {
		t.Fatal("Expected the reject and default steps to need different tick counts")
	}
	if !rejected.Cleared() || c.slot(2).Occupied() {
		t.Error("Expected slot 2 to be cleared")
	}
	if !c.slot(0).Occupied() {
		t.Error("Expected slot 0 to keep its food")
	}
}

func TestRejectTarget(t *testing.T) {
	got := rejectTarget(geom.Point{X: 480, Y: 310}, 960, 160)
	if want := (geom.Point{X: 1120, Y: 310}); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestClicksOnEmptySlotsAreIgnored(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) { cfg.Game.WinScore = 2 })

	empty := -1
	err := h.run(t, func(name string, st State) []int {
		slot := slotOf(name, st)
		if empty < 0 {
			empty = slot
			return []int{slot}
		}
		return []int{empty, slot}
	})
	if err != nil {
		t.Fatalf("Expected the game to be won, got %v", err)
	}
	if h.c.Score() != 2 {
		t.Errorf("Expected score 2, got %d", h.c.Score())
	}
	if h.speaker.said(h.c.cfg.Phrases.Reject) != 0 {
		t.Error("Expected no rejection for a click on an empty slot")
	}
}

func TestWinScoreStopsLoop(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) { cfg.Game.WinScore = 2 })

	var phases []Phase
	h.c.OnPhase = func(p Phase) { phases = append(phases, p) }

	if err := h.run(t, pickCorrect); err != nil {
		t.Fatalf("Expected the game to be won, got %v", err)
	}
	if h.c.Phase() != PhaseFinished {
		t.Errorf("Expected finished phase, got %v", h.c.Phase())
	}
	if h.speaker.last() != h.c.cfg.Phrases.Win {
		t.Errorf("Expected the win line last, got %q", h.speaker.last())
	}
	if phases[0] != PhasePromptingIntro || phases[1] != PhasePopulatingSlots {
		t.Errorf("Unexpected phase order: %v", phases)
	}
}

func TestAbortPolicy(t *testing.T) {
	h := newHarness(t, nil)
	h.speaker.failOn = func(text string) bool { return strings.HasPrefix(text, "Give me") }

	err := h.run(t, pickCorrect)
	if !errors.Is(err, errSpeech) {
		t.Fatalf("Expected the speech error, got %v", err)
	}
}

func TestSkipPolicy(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) {
		cfg.Game.OnError = config.OnErrorSkip
		cfg.Game.WinScore = 1
	})
	failed := false
	h.speaker.failOn = func(text string) bool {
		if text == h.c.cfg.Phrases.Affirm && !failed {
			failed = true
			return true
		}
		return false
	}

	if err := h.run(t, pickCorrect); err != nil {
		t.Fatalf("Expected the game to recover, got %v", err)
	}
	if !h.hasMessage("skipping turn 1") {
		t.Errorf("Expected a skip notice, got %v", h.messages)
	}
	if h.c.Score() != 1 {
		t.Errorf("Expected score 1, got %d", h.c.Score())
	}

	occupied := 0
	for _, s := range h.c.State().Slots {
		if s.Occupied() {
			occupied++
		}
	}
	if occupied != 2 {
		t.Errorf("Expected the skipped and the eaten slot to be empty, got %d occupied", occupied)
	}
}

func TestRetryPolicy(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) {
		cfg.Game.OnError = config.OnErrorRetry
		cfg.Game.WinScore = 1
	})
	failures := 0
	h.speaker.failOn = func(text string) bool {
		if text == h.c.cfg.Phrases.Affirm && failures == 0 {
			failures++
			return true
		}
		return false
	}

	if err := h.run(t, pickCorrect); err != nil {
		t.Fatalf("Expected the game to recover, got %v", err)
	}
	if !h.hasMessage("retrying turn 1 (1/3)") {
		t.Errorf("Expected a retry notice, got %v", h.messages)
	}

	// The food from the failed turn went back to its slot.
	occupied := 0
	for _, s := range h.c.State().Slots {
		if s.Occupied() {
			occupied++
			if !s.Actor.InContainer() {
				t.Error("Expected remaining foods to sit in their slots")
			}
		}
	}
	if occupied != 3 {
		t.Errorf("Expected 3 occupied slots, got %d", occupied)
	}
}

func TestRetryPolicyGivesUp(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) {
		cfg.Game.OnError = config.OnErrorRetry
		cfg.Game.MaxRetries = 2
	})
	h.speaker.failOn = func(text string) bool { return strings.HasPrefix(text, "Give me") }

	err := h.run(t, pickCorrect)
	if !errors.Is(err, errSpeech) {
		t.Fatalf("Expected the speech error, got %v", err)
	}

	prompts := 0
	h.speaker.mu.Lock()
	for _, l := range h.speaker.lines {
		if strings.HasPrefix(l, "Give me") {
			prompts++
		}
	}
	h.speaker.mu.Unlock()
	if prompts != 3 {
		t.Errorf("Expected 3 attempts, got %d", prompts)
	}
}

func TestNewCoordinatorRejectsSmallCatalog(t *testing.T) {
	cat, _ := catalog.New(testFoods[:3])
	_, err := NewCoordinator(config.DefaultConfig(), scene.New(960, 640), Deps{Catalog: cat})
	if !errors.Is(err, ErrTooFewFoods) {
		t.Errorf("Expected ErrTooFewFoods, got %v", err)
	}
}
