package duel

import (
	"strings"
	"testing"
)

// All six ordered pairs of differing categories must follow the cycle
// monster > spell > trap > monster.
func TestCategoryDominanceCycle(t *testing.T) {
	cases := []struct {
		player   Category
		opponent Category
		winner   Side
	}{
		{CategoryMonster, CategorySpell, SidePlayer},
		{CategorySpell, CategoryMonster, SideOpponent},
		{CategorySpell, CategoryTrap, SidePlayer},
		{CategoryTrap, CategorySpell, SideOpponent},
		{CategoryTrap, CategoryMonster, SidePlayer},
		{CategoryMonster, CategoryTrap, SideOpponent},
	}

	for _, tc := range cases {
		res := resolveRound(1,
			Card{Name: "P", Category: tc.player, Attack: 1000},
			Card{Name: "O", Category: tc.opponent, Attack: 1000},
		)
		if res.Winner != tc.winner {
			t.Errorf("%s vs %s: winner %s, want %s", tc.player, tc.opponent, res.Winner, tc.winner)
		}
		if !strings.Contains(res.Reason, string(tc.player)) || !strings.Contains(res.Reason, string(tc.opponent)) {
			t.Errorf("%s vs %s: reason %q does not name both categories", tc.player, tc.opponent, res.Reason)
		}
		if !strings.Contains(res.Reason, "dominates") {
			t.Errorf("%s vs %s: reason %q does not state the dominance direction", tc.player, tc.opponent, res.Reason)
		}
	}
}

func TestMonsterAttackComparison(t *testing.T) {
	cases := []struct {
		name       string
		pAtk, oAtk int
		winner     Side
	}{
		{"player higher", 2500, 2400, SidePlayer},
		{"opponent higher", 1200, 1900, SideOpponent},
		{"equal attack", 2000, 2000, SideDraw},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := resolveRound(1, monster("P", tc.pAtk), monster("O", tc.oAtk))
			if res.Winner != tc.winner {
				t.Fatalf("winner %s, want %s", res.Winner, tc.winner)
			}
		})
	}
}

// Matching non-monster categories draw regardless of any other attribute.
func TestSameNonMonsterCategoryDraws(t *testing.T) {
	for _, cat := range []Category{CategorySpell, CategoryTrap} {
		res := resolveRound(1,
			Card{Name: "P", Category: cat, Attack: 9000},
			Card{Name: "O", Category: cat, Attack: 0},
		)
		if res.Winner != SideDraw {
			t.Errorf("%s vs %s: winner %s, want draw", cat, cat, res.Winner)
		}
		if res.Reason == "" {
			t.Errorf("%s vs %s: empty reason", cat, cat)
		}
	}
}
