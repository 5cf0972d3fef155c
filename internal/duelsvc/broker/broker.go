package broker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/nebyat/duelmart-services/internal/comm"
	"github.com/nebyat/duelmart-services/internal/duel"
	"github.com/nebyat/duelmart-services/internal/duelsvc/archive"
	"github.com/nebyat/duelmart-services/internal/marketsvc/service"
)

// ResponseTopic is where duel responses are published for the socket service.
const ResponseTopic = "duel.response"

// Broker dispatches duel messages from the socket service, one engine
// session per socket id.
type Broker struct {
	Conn             *nats.Conn
	UserService      *service.UserService
	BalanceService   *service.BalanceService
	CardService      *service.CardService
	InventoryService *service.InventoryService
	Archive          *archive.Archive

	sessions sync.Map // socketId -> *session
}

type session struct {
	mu     sync.Mutex
	userId int64
	engine *duel.Engine
	rounds []duel.RoundResult
}

func NewBroker(nc *nats.Conn, userService *service.UserService,
	balanceService *service.BalanceService, cardService *service.CardService,
	inventoryService *service.InventoryService, arch *archive.Archive) *Broker {
	return &Broker{
		Conn:             nc,
		UserService:      userService,
		BalanceService:   balanceService,
		CardService:      cardService,
		InventoryService: inventoryService,
		Archive:          arch,
	}
}

// SubscribeSocketService consumes client duel messages relayed by socketsvc.
func (b *Broker) SubscribeSocketService(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handleMessage dispatches one message coming from the socket service.
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	err := json.Unmarshal(msgNat.Data, &msg)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	switch msg.Type {
	case "init":
		b.handleInit(msg)
	case "duel-start":
		b.handleDuelStart(msg)
	case "duel-select-card":
		b.handleSelectCard(msg)
	case "duel-confirm":
		b.handleConfirm(msg)
	case "duel-reset":
		b.handleReset(msg)
	case "duel-abandon":
		b.handleAbandon(msg)
	default:
		log.Warnf("unknown duel message type: %s", msg.Type)
	}
}

func (b *Broker) handleInit(msg *comm.WSMessage) {
	var request struct {
		UserId int64 `json:"user_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error %s", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := b.UserService.GetByID(ctx, request.UserId)
	if err != nil || user == nil {
		log.Errorf("Error [UserService.GetByID] %s", err)
		b.publishError("user not found", msg.SocketId)
		return
	}

	balance, err := b.BalanceService.GetUserBalance(ctx, user.UserId)
	if err != nil {
		log.Errorf("Error [BalanceService.GetUserBalance] %s", err)
	}

	playerData := comm.PlayerData{
		Name:    user.Name,
		UserId:  user.UserId,
		Balance: balance.StringFixed(2),
	}
	b.publish("init-response", playerData, msg.SocketId)
}

// handleDuelStart validates the picked hand against the user's inventory,
// draws the hidden opponent hand from the catalog, and starts round 1.
func (b *Broker) handleDuelStart(msg *comm.WSMessage) {
	var request comm.DuelStartReq
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding duel-start: %s", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if len(request.CardIds) != duel.HandSize {
		b.publishError("select exactly 5 cards to duel", msg.SocketId)
		return
	}
	if hasDuplicateIds(request.CardIds) {
		b.publishError("a duel hand cannot contain the same card twice", msg.SocketId)
		return
	}

	owned, err := b.InventoryService.OwnedCards(ctx, request.UserId, request.CardIds)
	if err != nil {
		log.Errorf("Error [InventoryService.OwnedCards] %s", err)
		b.publishError("could not load your cards", msg.SocketId)
		return
	}
	ownedById := make(map[int64]duel.Card, len(owned))
	for _, c := range owned {
		ownedById[c.ID] = duel.Card{
			ID:       c.ID,
			Name:     c.Name,
			Category: duel.Category(c.Category),
			Attack:   c.Attack,
			Defense:  c.Defense,
			Price:    c.Price,
			Image:    c.ImageURL,
		}
	}

	hand := make([]duel.Card, 0, duel.HandSize)
	for _, id := range request.CardIds {
		card, ok := ownedById[id]
		if !ok {
			b.publishError("you can only duel with cards you own", msg.SocketId)
			return
		}
		hand = append(hand, card)
	}

	if err := b.CardService.RefreshCatalog(ctx); err != nil {
		log.Errorf("Error [CardService.RefreshCatalog] %s", err)
		b.publishError("could not load the card catalog", msg.SocketId)
		return
	}
	pool := make([]duel.Card, 0)
	for _, c := range b.CardService.CatalogSnapshot() {
		pool = append(pool, duel.Card{
			ID:       c.ID,
			Name:     c.Name,
			Category: duel.Category(c.Category),
			Attack:   c.Attack,
			Defense:  c.Defense,
			Price:    c.Price,
			Image:    c.ImageURL,
		})
	}

	engine := duel.NewEngine(nil)
	if err := engine.SelectHand(hand); err != nil {
		b.publishError(err.Error(), msg.SocketId)
		return
	}
	if err := engine.Prepare(pool); err != nil {
		log.Errorf("Error preparing duel for socket %s: %s", msg.SocketId, err)
		b.publishError("the catalog is too small to draw an opponent hand", msg.SocketId)
		return
	}

	sess := &session{userId: request.UserId, engine: engine}
	b.sessions.Store(msg.SocketId, sess)

	if err := b.Archive.TrackSession(ctx, msg.SocketId, request.UserId); err != nil {
		log.Errorf("Error [Archive.TrackSession] %s", err)
	}

	ready := comm.DuelReady{
		Round:        engine.Round(),
		PlayerCards:  engine.PlayerHand().Cards(),
		OpponentHand: engine.OpponentHand(),
	}
	b.publish("duel-ready", ready, msg.SocketId)
}

func (b *Broker) handleSelectCard(msg *comm.WSMessage) {
	var request comm.DuelSelectReq
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding duel-select-card: %s", err)
		return
	}

	sess, ok := b.session(msg.SocketId)
	if !ok {
		b.publishError("no duel in progress", msg.SocketId)
		return
	}

	sess.mu.Lock()
	err := sess.engine.SelectCard(request.Index)
	sess.mu.Unlock()
	if err != nil {
		b.publishError(err.Error(), msg.SocketId)
	}
}

func (b *Broker) handleConfirm(msg *comm.WSMessage) {
	sess, ok := b.session(msg.SocketId)
	if !ok {
		b.publishError("no duel in progress", msg.SocketId)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.engine.ConfirmRound()
	if err != nil {
		b.publishError(err.Error(), msg.SocketId)
		return
	}
	sess.rounds = append(sess.rounds, *result)

	playerScore, opponentScore := sess.engine.Scores()
	finished := sess.engine.State() == duel.StateResult

	roundRes := comm.DuelRoundRes{
		Result:        *result,
		Round:         sess.engine.Round(),
		PlayerScore:   playerScore,
		OpponentScore: opponentScore,
		OpponentHand:  sess.engine.OpponentHand(),
		Finished:      finished,
	}
	b.publish("duel-round-result", roundRes, msg.SocketId)

	if !finished {
		return
	}

	matchResult, err := sess.engine.Result()
	if err != nil {
		log.Errorf("Error reading match result for socket %s: %s", msg.SocketId, err)
		return
	}
	b.publish("duel-match-result", comm.DuelMatchRes{Result: *matchResult}, msg.SocketId)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record := archive.MatchRecord{
		SocketId:      msg.SocketId,
		UserId:        sess.userId,
		Winner:        matchResult.Winner,
		PlayerScore:   matchResult.PlayerScore,
		OpponentScore: matchResult.OpponentScore,
		Rounds:        sess.rounds,
	}
	if err := b.Archive.SaveMatch(ctx, record); err != nil {
		log.Errorf("Error [Archive.SaveMatch] %s", err)
	}
	if err := b.Archive.DropSession(ctx, msg.SocketId); err != nil {
		log.Errorf("Error [Archive.DropSession] %s", err)
	}
}

// handleReset starts a new duel: everything back to the selection phase.
func (b *Broker) handleReset(msg *comm.WSMessage) {
	sess, ok := b.session(msg.SocketId)
	if !ok {
		return
	}
	sess.mu.Lock()
	sess.engine.Reset()
	sess.rounds = nil
	sess.mu.Unlock()
}

func (b *Broker) handleAbandon(msg *comm.WSMessage) {
	if _, ok := b.session(msg.SocketId); !ok {
		return
	}
	b.sessions.Delete(msg.SocketId)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.Archive.DropSession(ctx, msg.SocketId); err != nil {
		log.Errorf("Error [Archive.DropSession] %s", err)
	}
}

// hasDuplicateIds reports whether the picked hand names the same card twice.
func hasDuplicateIds(ids []int64) bool {
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}

func (b *Broker) session(socketId string) (*session, bool) {
	v, ok := b.sessions.Load(socketId)
	if !ok {
		return nil, false
	}
	return v.(*session), true
}

func (b *Broker) publish(msgType string, payload interface{}, socketId string) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Error marshaling %s payload: %s", msgType, err)
		return
	}

	msg := comm.WSMessage{Type: msgType, Data: data, SocketId: socketId}
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error marshaling %s message: %s", msgType, err)
		return
	}

	if err := b.Conn.Publish(ResponseTopic, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", ResponseTopic, err)
	}
}

func (b *Broker) publishError(message, socketId string) {
	b.publish("duel-error", comm.DuelErrorRes{Message: message}, socketId)
}
