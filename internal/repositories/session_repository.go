package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"travelwise/internal/models/db_models"
)

// SessionRepository keeps the logged-in profile snapshot per account.
type SessionRepository interface {
	Save(ctx context.Context, session *db_models.Session, ttl time.Duration) error
	// Find returns (nil, nil) when the session expired or never existed.
	Find(ctx context.Context, accountID string) (*db_models.Session, error)
	Delete(ctx context.Context, accountID string) error
}

type sessionRepository struct {
	rdb    *redis.Client
	prefix string
}

func NewSessionRepository(rdb *redis.Client, prefix string) SessionRepository {
	return &sessionRepository{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (s *sessionRepository) key(accountID string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, accountID)
}

func (s *sessionRepository) Save(ctx context.Context, session *db_models.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.rdb.Set(ctx, s.key(session.AccountID), data, ttl).Err()
}

func (s *sessionRepository) Find(ctx context.Context, accountID string) (*db_models.Session, error) {
	data, err := s.rdb.Get(ctx, s.key(accountID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session db_models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *sessionRepository) Delete(ctx context.Context, accountID string) error {
	return s.rdb.Del(ctx, s.key(accountID)).Err()
}
