package comm

import (
	"encoding/json"

	"github.com/nebyat/duelmart-services/internal/duel"
)

// WSMessage is the envelope relayed between web clients, the socket service
// and the duel service.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "duel-start", "duel-select-card"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

type PlayerData struct {
	Name    string `json:"name"`
	UserId  int64  `json:"user_id"`
	Balance string `json:"balance"`
}

// DuelStartReq begins a duel: the player's 5 picked card ids.
type DuelStartReq struct {
	UserId  int64   `json:"user_id"`
	CardIds []int64 `json:"card_ids"`
}

// DuelReady is sent once the opponent hand is drawn. Opponent cards stay
// hidden; only their played-state is projected.
type DuelReady struct {
	Round        int               `json:"round"`
	PlayerCards  []duel.Card       `json:"player_cards"`
	OpponentHand []duel.HiddenCard `json:"opponent_hand"`
}

type DuelSelectReq struct {
	UserId int64 `json:"user_id"`
	Index  int   `json:"index"`
}

// DuelRoundRes carries one resolved round plus the running score.
type DuelRoundRes struct {
	Result        duel.RoundResult  `json:"result"`
	Round         int               `json:"round"`
	PlayerScore   int               `json:"player_score"`
	OpponentScore int               `json:"opponent_score"`
	OpponentHand  []duel.HiddenCard `json:"opponent_hand"`
	Finished      bool              `json:"finished"`
}

// DuelMatchRes is the frozen outcome consumed by the results view.
type DuelMatchRes struct {
	Result duel.MatchResult `json:"result"`
}

// DuelErrorRes reports a rejected duel action back to the client.
type DuelErrorRes struct {
	Message string `json:"message"`
}
