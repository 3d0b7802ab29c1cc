package tracker

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const visitorsCollection = "visitors"

// MongoStore implements Store on a MongoDB collection holding one document
// per visitor. Appends are expressed as conditional update operators applied
// atomically by the server, so concurrent appends for one visitor can only
// order after each other, never interleave.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates a store backed by the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(visitorsCollection)}
}

// FindVisitor reads the whole visitor document by id.
func (s *MongoStore) FindVisitor(ctx context.Context, visitorID string) (*Visitor, error) {
	var visitor Visitor
	err := s.col.FindOne(ctx, bson.M{"_id": visitorID}).Decode(&visitor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVisitorNotFound
		}
		return nil, fmt.Errorf("find visitor: %w", err)
	}
	return &visitor, nil
}

// CreateVisitor inserts a fresh visitor document.
func (s *MongoStore) CreateVisitor(ctx context.Context, visitor *Visitor) error {
	if _, err := s.col.InsertOne(ctx, visitor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrVisitorExists
		}
		return fmt.Errorf("create visitor: %w", err)
	}
	return nil
}

// AppendPageView applies the continuity decision via a single conditional
// update keyed on the visitor id.
func (s *MongoStore) AppendPageView(ctx context.Context, visitorID string, decision Decision, page PageView) error {
	if decision.NewSession {
		return s.appendSession(ctx, visitorID, decision.SessionID, page)
	}
	return s.appendToSession(ctx, visitorID, decision.SessionID, page)
}

// appendSession pushes a new session holding the page view and bumps the
// visit counter in one atomic update.
func (s *MongoStore) appendSession(ctx context.Context, visitorID, sessionID string, page PageView) error {
	session := Session{
		ID:        sessionID,
		StartTime: page.Timestamp,
		Pages:     []PageView{page},
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": visitorID},
		bson.M{
			"$push": bson.M{"sessions": session},
			"$inc":  bson.M{"visit_count": 1},
			"$set":  bson.M{"last_visit": page.Timestamp},
		},
	)
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrVisitorNotFound
	}
	return nil
}

// appendToSession pushes the page view onto the identified session using the
// positional operator; a zero match means either the visitor or the session
// is gone.
func (s *MongoStore) appendToSession(ctx context.Context, visitorID, sessionID string, page PageView) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": visitorID, "sessions.id": sessionID},
		bson.M{
			"$push": bson.M{"sessions.$.pages": page},
			"$set":  bson.M{"last_visit": page.Timestamp},
		},
	)
	if err != nil {
		return fmt.Errorf("append page view: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing visitor from a stale session reference.
		if _, ferr := s.FindVisitor(ctx, visitorID); ferr != nil {
			return ferr
		}
		return ErrSessionNotFound
	}
	return nil
}
