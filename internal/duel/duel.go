package duel

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	HandSize   = 5
	MaxRounds  = 5
	WinsToTake = 3
)

// State is the engine phase. A match walks selection -> prepare -> round ->
// result, and Reset brings it back to selection.
type State string

const (
	StateSelection State = "selection"
	StatePrepare   State = "prepare"
	StateRound     State = "round"
	StateResult    State = "result"
)

type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "ai"
	SideDraw     Side = "draw"
)

var (
	ErrHandSize     = errors.New("a duel hand requires exactly 5 cards")
	ErrPoolTooSmall = errors.New("card pool smaller than hand size")
	ErrNoSelection  = errors.New("no card selected for this round")

	ErrIndexOutOfRange = errors.New("card index out of range")
)

// RoundResult records one resolved comparison. Read-only after creation.
type RoundResult struct {
	Round        int    `json:"round"`
	PlayerCard   Card   `json:"player_card"`
	OpponentCard Card   `json:"opponent_card"`
	Winner       Side   `json:"winner"`
	Reason       string `json:"reason"`
}

// MatchResult is the frozen outcome consumed by the results view.
type MatchResult struct {
	Winner        Side `json:"winner"`
	PlayerScore   int  `json:"player_score"`
	OpponentScore int  `json:"opponent_score"`
}

// HiddenCard is the projection of an opponent card before it is played.
// No attributes beyond played-state leak to the player.
type HiddenCard struct {
	Played bool `json:"played"`
}

// Engine runs one best-of-five duel between the player and a scripted
// opponent. Not safe for concurrent use; callers serialize access.
type Engine struct {
	rng *rand.Rand

	state        State
	player       *Hand
	opponent     *Hand
	round        int
	playerWins   int
	opponentWins int
	lastRound    *RoundResult
	result       *MatchResult
}

// NewEngine creates an engine in the selection state. A nil rng falls back
// to a time-seeded source; tests inject a fixed seed.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng, state: StateSelection}
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Round() int { return e.round }

func (e *Engine) Scores() (player, opponent int) {
	return e.playerWins, e.opponentWins
}

func (e *Engine) LastRound() *RoundResult { return e.lastRound }

// PlayerHand exposes the player's own hand; nil before selection.
func (e *Engine) PlayerHand() *Hand { return e.player }

// OpponentHand returns the hidden projection of the opponent hand.
func (e *Engine) OpponentHand() []HiddenCard {
	if e.opponent == nil {
		return nil
	}
	hidden := make([]HiddenCard, HandSize)
	for i := range hidden {
		hidden[i] = HiddenCard{Played: e.opponent.IsPlayed(i)}
	}
	return hidden
}

// SelectHand fixes the player's 5 cards and advances to the prepare state.
func (e *Engine) SelectHand(cards []Card) error {
	if e.state != StateSelection {
		return fmt.Errorf("cannot select a hand in state %q", e.state)
	}
	if len(cards) != HandSize {
		return ErrHandSize
	}
	e.player = NewHand(cards)
	e.state = StatePrepare
	return nil
}

// Prepare draws the opponent hand from pool without replacement and starts
// round 1. A pool smaller than the hand size fails fast with ErrPoolTooSmall.
func (e *Engine) Prepare(pool []Card) error {
	if e.state != StatePrepare {
		return fmt.Errorf("cannot prepare in state %q", e.state)
	}
	if len(pool) < HandSize {
		return ErrPoolTooSmall
	}

	remaining := append([]Card(nil), pool...)
	drawn := make([]Card, 0, HandSize)
	for i := 0; i < HandSize; i++ {
		j := e.rng.Intn(len(remaining))
		drawn = append(drawn, remaining[j])
		remaining = append(remaining[:j], remaining[j+1:]...)
	}
	e.opponent = NewHand(drawn)

	e.round = 1
	e.state = StateRound
	e.autoSelectOpponent()
	return nil
}

// SelectCard records the player's pick for the current round. Picking an
// already-played index is a no-op, matching the storefront behavior.
func (e *Engine) SelectCard(index int) error {
	if e.state != StateRound {
		return fmt.Errorf("cannot select a card in state %q", e.state)
	}
	return e.player.Select(index)
}

// ConfirmRound resolves the current round. It requires a player selection;
// the opponent card was auto-selected at round start.
func (e *Engine) ConfirmRound() (*RoundResult, error) {
	if e.state != StateRound {
		return nil, fmt.Errorf("cannot confirm a round in state %q", e.state)
	}
	pIdx, ok := e.player.Selected()
	if !ok {
		return nil, ErrNoSelection
	}
	oIdx, ok := e.opponent.Selected()
	if !ok {
		return nil, fmt.Errorf("opponent has no selection for round %d", e.round)
	}

	res := resolveRound(e.round, e.player.Card(pIdx), e.opponent.Card(oIdx))
	e.lastRound = &res

	switch res.Winner {
	case SidePlayer:
		e.playerWins++
	case SideOpponent:
		e.opponentWins++
	}

	e.player.MarkPlayed(pIdx)
	e.opponent.MarkPlayed(oIdx)
	e.player.ResetSelection()
	e.opponent.ResetSelection()

	if e.terminal() {
		e.finish()
		return e.lastRound, nil
	}

	e.round++
	e.autoSelectOpponent()
	return e.lastRound, nil
}

// Result returns the frozen match outcome once the duel has ended.
func (e *Engine) Result() (*MatchResult, error) {
	if e.state != StateResult {
		return nil, fmt.Errorf("no result in state %q", e.state)
	}
	return e.result, nil
}

// Reset discards all match state and returns to the selection phase.
func (e *Engine) Reset() {
	e.state = StateSelection
	e.player = nil
	e.opponent = nil
	e.round = 0
	e.playerWins = 0
	e.opponentWins = 0
	e.lastRound = nil
	e.result = nil
}

// terminal checks the spec §4.1 stop conditions: first to 3 wins, or the
// fifth round has been resolved.
func (e *Engine) terminal() bool {
	if e.playerWins >= WinsToTake || e.opponentWins >= WinsToTake {
		return true
	}
	return e.round >= MaxRounds
}

func (e *Engine) finish() {
	winner := SideDraw
	switch {
	case e.playerWins > e.opponentWins:
		winner = SidePlayer
	case e.opponentWins > e.playerWins:
		winner = SideOpponent
	}
	e.result = &MatchResult{
		Winner:        winner,
		PlayerScore:   e.playerWins,
		OpponentScore: e.opponentWins,
	}
	e.state = StateResult
}

// autoSelectOpponent picks one unplayed opponent card uniformly at random.
func (e *Engine) autoSelectOpponent() {
	unplayed := e.opponent.UnplayedIndices()
	if len(unplayed) == 0 {
		return
	}
	idx := unplayed[e.rng.Intn(len(unplayed))]
	_ = e.opponent.Select(idx)
}
