package archive

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nebyat/duelmart-services/internal/duel"
)

const (
	SessionCollection = "duel_sessions"
	MatchCollection   = "duel_matches"

	// Abandoned sessions expire via the TTL index on expires_at.
	sessionTTL = 2 * time.Hour
)

// SessionDoc tracks one live duel keyed by socket id.
type SessionDoc struct {
	SocketId  string    `bson:"socket_id"`
	UserId    int64     `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// MatchRecord is the archived outcome of a finished duel.
type MatchRecord struct {
	SocketId      string             `bson:"socket_id"`
	UserId        int64              `bson:"user_id"`
	Winner        duel.Side          `bson:"winner"`
	PlayerScore   int                `bson:"player_score"`
	OpponentScore int                `bson:"opponent_score"`
	Rounds        []duel.RoundResult `bson:"rounds"`
	CreatedAt     time.Time          `bson:"created_at"`
}

type Archive struct {
	sessions *mongo.Collection
	matches  *mongo.Collection
}

func New(db *mongo.Database) *Archive {
	return &Archive{
		sessions: db.Collection(SessionCollection),
		matches:  db.Collection(MatchCollection),
	}
}

// TrackSession upserts the live-session document for a socket.
func (a *Archive) TrackSession(ctx context.Context, socketId string, userId int64) error {
	now := time.Now()
	doc := SessionDoc{
		SocketId:  socketId,
		UserId:    userId,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	opts := options.Replace().SetUpsert(true)
	_, err := a.sessions.ReplaceOne(ctx, bson.M{"socket_id": socketId}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to track duel session: %w", err)
	}
	return nil
}

// DropSession removes the live-session document once the duel ends or the
// socket goes away.
func (a *Archive) DropSession(ctx context.Context, socketId string) error {
	_, err := a.sessions.DeleteOne(ctx, bson.M{"socket_id": socketId})
	if err != nil {
		return fmt.Errorf("failed to drop duel session: %w", err)
	}
	return nil
}

// SaveMatch archives a finished duel.
func (a *Archive) SaveMatch(ctx context.Context, record MatchRecord) error {
	record.CreatedAt = time.Now()
	_, err := a.matches.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to archive match: %w", err)
	}
	return nil
}

// MatchesForUser returns a user's archived duels, newest first.
func (a *Archive) MatchesForUser(ctx context.Context, userId int64, limit int64) ([]MatchRecord, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cur, err := a.matches.Find(ctx, bson.M{"user_id": userId}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find matches: %w", err)
	}
	defer cur.Close(ctx)

	var records []MatchRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	return records, nil
}
