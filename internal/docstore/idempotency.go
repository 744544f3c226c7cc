package docstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/repo"
)

// GetIdempotency returns the live record for (scope, key) or repo.ErrNotFound.
// The TTL index reaps lazily, so expiry is also checked in the filter.
func (s *Store) GetIdempotency(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(scope) == "" || strings.TrimSpace(key) == "" {
		return nil, repo.ErrNotFound
	}
	filter := bson.D{
		{Key: "scope", Value: scope},
		{Key: "key", Value: key},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: now}}},
	}
	var rec domain.Idempotency
	if err := s.db.Collection(IdempotencyCollection).FindOne(ctx, filter).Decode(&rec); err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

// CreateIdempotency inserts a record, returning repo.ErrDuplicate when the
// (scope, key) pair is already taken.
func (s *Store) CreateIdempotency(ctx context.Context, scope, key, location string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:        uuid.NewString(),
		Scope:     scope,
		Key:       key,
		Location:  location,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if _, err := s.db.Collection(IdempotencyCollection).InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repo.ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
