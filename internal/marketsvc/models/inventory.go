package models

import "time"

// InventoryItem represents the inventory table: cards owned by a user.
type InventoryItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CardID    int64     `json:"card_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedCard is the inventory row joined with the card's display fields.
type OwnedCard struct {
	Card
	Quantity int `json:"quantity"`
}
