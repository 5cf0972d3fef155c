package duel

// Hand holds a participant's 5 cards plus the per-round selection and the
// monotonically growing set of played indices.
type Hand struct {
	cards    []Card
	selected *int
	played   map[int]bool
}

func NewHand(cards []Card) *Hand {
	return &Hand{
		cards:  append([]Card(nil), cards...),
		played: make(map[int]bool, len(cards)),
	}
}

func (h *Hand) Card(index int) Card { return h.cards[index] }

func (h *Hand) Cards() []Card { return append([]Card(nil), h.cards...) }

// Select marks index as the card for this round. Selecting an index already
// in the played set leaves the current selection unchanged and reports no
// error; out-of-range indices are rejected.
func (h *Hand) Select(index int) error {
	if index < 0 || index >= len(h.cards) {
		return ErrIndexOutOfRange
	}
	if h.played[index] {
		return nil
	}
	h.selected = &index
	return nil
}

func (h *Hand) Selected() (int, bool) {
	if h.selected == nil {
		return 0, false
	}
	return *h.selected, true
}

func (h *Hand) ResetSelection() { h.selected = nil }

func (h *Hand) MarkPlayed(index int) { h.played[index] = true }

func (h *Hand) IsPlayed(index int) bool { return h.played[index] }

func (h *Hand) UnplayedIndices() []int {
	var idx []int
	for i := range h.cards {
		if !h.played[i] {
			idx = append(idx, i)
		}
	}
	return idx
}
