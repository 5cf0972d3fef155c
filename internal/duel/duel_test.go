package duel

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func monster(name string, atk int) Card {
	return Card{Name: name, Category: CategoryMonster, Attack: atk}
}

func spell(name string) Card { return Card{Name: name, Category: CategorySpell} }

func trap(name string) Card { return Card{Name: name, Category: CategoryTrap} }

func testHand() []Card {
	return []Card{
		monster("Blade Golem", 2500),
		monster("Ash Serpent", 1800),
		spell("Mirror Rite"),
		trap("Pitfall"),
		monster("Moss Titan", 2100),
	}
}

func testPool() []Card {
	return []Card{
		monster("Rust Hound", 2400),
		monster("Gloom Wisp", 900),
		spell("Ember Sign"),
		trap("Snare Net"),
		monster("Dune Crawler", 1500),
		spell("Frost Sigil"),
		trap("Iron Maw"),
	}
}

func startedEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(rand.New(rand.NewSource(1)))
	if err := e.SelectHand(testHand()); err != nil {
		t.Fatalf("SelectHand: %v", err)
	}
	if err := e.Prepare(testPool()); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return e
}

func TestSelectHandRequiresFiveCards(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(1)))
	if err := e.SelectHand(testHand()[:4]); !errors.Is(err, ErrHandSize) {
		t.Fatalf("expected ErrHandSize for 4 cards, got %v", err)
	}
	if err := e.SelectHand(append(testHand(), spell("Extra"))); !errors.Is(err, ErrHandSize) {
		t.Fatalf("expected ErrHandSize for 6 cards, got %v", err)
	}
	if e.State() != StateSelection {
		t.Fatalf("state changed on rejected selection: %s", e.State())
	}
}

func TestPrepareRejectsSmallPool(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(1)))
	if err := e.SelectHand(testHand()); err != nil {
		t.Fatalf("SelectHand: %v", err)
	}
	if err := e.Prepare(testPool()[:4]); !errors.Is(err, ErrPoolTooSmall) {
		t.Fatalf("expected ErrPoolTooSmall, got %v", err)
	}
}

func TestPrepareDrawsWithoutReplacement(t *testing.T) {
	e := startedEngine(t)
	if e.State() != StateRound {
		t.Fatalf("expected round state, got %s", e.State())
	}
	if e.Round() != 1 {
		t.Fatalf("expected round 1, got %d", e.Round())
	}
	seen := map[string]bool{}
	for _, c := range e.opponent.Cards() {
		if seen[c.Name] {
			t.Fatalf("duplicate card %q drawn from pool", c.Name)
		}
		seen[c.Name] = true
	}
	if len(seen) != HandSize {
		t.Fatalf("expected %d distinct cards, got %d", HandSize, len(seen))
	}
}

func TestOpponentHandStaysHidden(t *testing.T) {
	e := startedEngine(t)
	hidden := e.OpponentHand()
	if len(hidden) != HandSize {
		t.Fatalf("expected %d hidden cards, got %d", HandSize, len(hidden))
	}
	for i, h := range hidden {
		if h.Played {
			t.Fatalf("card %d marked played before any round", i)
		}
	}
}

func TestConfirmWithoutSelectionRejected(t *testing.T) {
	e := startedEngine(t)
	if _, err := e.ConfirmRound(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestSelectPlayedCardIsNoOp(t *testing.T) {
	e := startedEngine(t)
	if err := e.SelectCard(0); err != nil {
		t.Fatalf("SelectCard: %v", err)
	}
	if _, err := e.ConfirmRound(); err != nil {
		t.Fatalf("ConfirmRound: %v", err)
	}

	// Index 0 is now in the played set; selecting it must not change the
	// current (empty) selection.
	if err := e.SelectCard(0); err != nil {
		t.Fatalf("SelectCard on played index: %v", err)
	}
	if _, ok := e.PlayerHand().Selected(); ok {
		t.Fatal("selection changed by picking an already-played card")
	}

	if err := e.SelectCard(1); err != nil {
		t.Fatalf("SelectCard: %v", err)
	}
	idx, ok := e.PlayerHand().Selected()
	if !ok || idx != 1 {
		t.Fatalf("expected selection 1, got %d (ok=%v)", idx, ok)
	}
}

func TestSelectCardOutOfRange(t *testing.T) {
	e := startedEngine(t)
	if err := e.SelectCard(HandSize); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

// playMatch drives a full duel by always selecting the lowest unplayed
// player index, returning every round result.
func playMatch(t *testing.T, e *Engine) []RoundResult {
	t.Helper()
	var rounds []RoundResult
	for e.State() == StateRound {
		unplayed := e.PlayerHand().UnplayedIndices()
		if len(unplayed) == 0 {
			t.Fatal("no unplayed cards left mid-match")
		}
		if err := e.SelectCard(unplayed[0]); err != nil {
			t.Fatalf("SelectCard: %v", err)
		}
		res, err := e.ConfirmRound()
		if err != nil {
			t.Fatalf("ConfirmRound: %v", err)
		}
		rounds = append(rounds, *res)
	}
	return rounds
}

func TestMatchTerminatesByRoundFive(t *testing.T) {
	e := startedEngine(t)
	rounds := playMatch(t, e)
	if len(rounds) > MaxRounds {
		t.Fatalf("match ran %d rounds", len(rounds))
	}
	if e.State() != StateResult {
		t.Fatalf("expected result state, got %s", e.State())
	}
	res, err := e.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	p, o := e.Scores()
	if res.PlayerScore != p || res.OpponentScore != o {
		t.Fatalf("result scores %d/%d do not match engine %d/%d",
			res.PlayerScore, res.OpponentScore, p, o)
	}
	switch {
	case p > o:
		if res.Winner != SidePlayer {
			t.Fatalf("winner %s with scores %d/%d", res.Winner, p, o)
		}
	case o > p:
		if res.Winner != SideOpponent {
			t.Fatalf("winner %s with scores %d/%d", res.Winner, p, o)
		}
	default:
		if res.Winner != SideDraw {
			t.Fatalf("winner %s with tied scores", res.Winner)
		}
	}
}

func TestMatchTerminatesEarlyAtThreeWins(t *testing.T) {
	// A pool of weak monsters guarantees the player sweeps 3-0.
	pool := []Card{
		monster("Pebble", 100),
		monster("Twig", 110),
		monster("Leaf", 120),
		monster("Drip", 130),
		monster("Spark", 140),
	}
	hand := []Card{
		monster("A", 3000), monster("B", 3000), monster("C", 3000),
		monster("D", 3000), monster("E", 3000),
	}
	e := NewEngine(rand.New(rand.NewSource(7)))
	if err := e.SelectHand(hand); err != nil {
		t.Fatalf("SelectHand: %v", err)
	}
	if err := e.Prepare(pool); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	rounds := playMatch(t, e)
	if len(rounds) != WinsToTake {
		t.Fatalf("expected the match to stop after %d rounds, got %d", WinsToTake, len(rounds))
	}
	res, err := e.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if res.Winner != SidePlayer || res.PlayerScore != 3 || res.OpponentScore != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestMonsterAttackReasonCitesValues(t *testing.T) {
	res := resolveRound(1, monster("Blade Golem", 2500), monster("Rust Hound", 2400))
	if res.Winner != SidePlayer {
		t.Fatalf("expected player win, got %s", res.Winner)
	}
	if !strings.Contains(res.Reason, "2500 > 2400") {
		t.Fatalf("reason %q does not cite the attack values", res.Reason)
	}
}

func TestResetReturnsToSelection(t *testing.T) {
	e := startedEngine(t)
	playMatch(t, e)
	e.Reset()

	if e.State() != StateSelection {
		t.Fatalf("expected selection state after reset, got %s", e.State())
	}
	if e.Round() != 0 {
		t.Fatalf("round not reset: %d", e.Round())
	}
	p, o := e.Scores()
	if p != 0 || o != 0 {
		t.Fatalf("scores not reset: %d/%d", p, o)
	}
	if e.PlayerHand() != nil || e.OpponentHand() != nil {
		t.Fatal("hands survived reset")
	}
	if e.LastRound() != nil {
		t.Fatal("last round survived reset")
	}
	if err := e.SelectHand(testHand()); err != nil {
		t.Fatalf("SelectHand after reset: %v", err)
	}
}
