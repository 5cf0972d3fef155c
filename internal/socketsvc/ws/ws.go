package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/nebyat/duelmart-services/internal/comm"
	"github.com/nebyat/duelmart-services/internal/socketsvc/broker"
)

// DuelTopic is where client duel messages are published for the duel service.
const DuelTopic = "duel.service"

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
	Broker  *broker.Broker
}

func NewWs() *Ws {
	return &Ws{}
}

// SocketMessage handles a socket message from a web client by relaying it
// to the duel service over NATS.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "init", "duel-start", "duel-select-card", "duel-confirm", "duel-reset":
		s.relay(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) relay(socketId string, msg *comm.WSMessage) {
	msg.SocketId = socketId

	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return
	}

	if err := s.Broker.Publish(DuelTopic, bytes); err != nil {
		log.Errorf("Failed to publish to NATS topic %s: %v", DuelTopic, err)
		return
	}

	log.Debugf("Relayed %s message for socket %s", msg.Type, socketId)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

// HandleDisconnect drops the connection and tells the duel service so it can
// discard the session.
func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)

	msg := &comm.WSMessage{Type: "duel-abandon", SocketId: socketId}
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal disconnect message: %v", err)
		return
	}
	if err := s.Broker.Publish(DuelTopic, bytes); err != nil {
		log.Errorf("Failed to publish disconnect for socket %s: %v", socketId, err)
	}
}
