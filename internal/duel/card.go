package duel

import "github.com/shopspring/decimal"

// Category is the card kind the dominance cycle is built on.
type Category string

const (
	CategoryMonster Category = "monster"
	CategorySpell   Category = "spell"
	CategoryTrap    Category = "trap"
)

// Card is the engine's view of a catalog card. Immutable once fetched;
// attack and defense are meaningful for monsters only.
type Card struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category Category        `json:"category"`
	Attack   int             `json:"attack"`
	Defense  int             `json:"defense"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}
