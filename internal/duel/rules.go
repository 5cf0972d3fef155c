package duel

import "fmt"

// dominates reports whether category a beats category b under the cyclic
// rule: monster beats spell, spell beats trap, trap beats monster.
func dominates(a, b Category) bool {
	switch a {
	case CategoryMonster:
		return b == CategorySpell
	case CategorySpell:
		return b == CategoryTrap
	case CategoryTrap:
		return b == CategoryMonster
	}
	return false
}

// resolveRound compares the two played cards and produces the round record.
func resolveRound(round int, playerCard, opponentCard Card) RoundResult {
	res := RoundResult{
		Round:        round,
		PlayerCard:   playerCard,
		OpponentCard: opponentCard,
	}

	pc, oc := playerCard.Category, opponentCard.Category

	if pc != oc {
		switch {
		case dominates(pc, oc):
			res.Winner = SidePlayer
			res.Reason = fmt.Sprintf("%s dominates %s", pc, oc)
		case dominates(oc, pc):
			res.Winner = SideOpponent
			res.Reason = fmt.Sprintf("%s dominates %s", oc, pc)
		}
		return res
	}

	if pc == CategoryMonster {
		switch {
		case playerCard.Attack > opponentCard.Attack:
			res.Winner = SidePlayer
			res.Reason = fmt.Sprintf("attack %d > %d", playerCard.Attack, opponentCard.Attack)
		case opponentCard.Attack > playerCard.Attack:
			res.Winner = SideOpponent
			res.Reason = fmt.Sprintf("attack %d > %d", opponentCard.Attack, playerCard.Attack)
		default:
			res.Winner = SideDraw
			res.Reason = fmt.Sprintf("equal attack %d", playerCard.Attack)
		}
		return res
	}

	// Matching non-monster categories always cancel out.
	res.Winner = SideDraw
	res.Reason = fmt.Sprintf("both %s cards cancel out", pc)
	return res
}
