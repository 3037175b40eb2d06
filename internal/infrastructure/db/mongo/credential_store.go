package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hockeyclub/club-system/internal/core/domain"
)

const usersCollection = "users"

// CredentialStore is the persistent drop-in for the Phase-1 in-memory table.
// Documents are stored with a lowercased email so lookups stay
// case-insensitive.
type CredentialStore struct {
	coll *mongo.Collection
}

func NewCredentialStore(db *mongo.Database) *CredentialStore {
	return &CredentialStore{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID         string `bson:"_id"`
	Email      string `bson:"email"`
	FirstName  string `bson:"first_name"`
	LastName   string `bson:"last_name"`
	Role       string `bson:"role"`
	IsActive   bool   `bson:"is_active"`
	SecretHash string `bson:"secret_hash"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	var doc userDoc
	filter := bson.M{"email": strings.ToLower(email)}
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.Credential{
		User: domain.User{
			ID:        doc.ID,
			Email:     doc.Email,
			FirstName: doc.FirstName,
			LastName:  doc.LastName,
			Role:      domain.Role(doc.Role),
			IsActive:  doc.IsActive,
			CreatedAt: unixToTime(doc.CreatedAt),
			UpdatedAt: unixToTime(doc.UpdatedAt),
		},
		SecretHash: doc.SecretHash,
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
