package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type sessionStore struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewSessionStore(client redis.Cmdable) repository.SessionStore {
	return &sessionStore{client: client, now: time.Now}
}

// Save keeps the session until its expiry.
func (s *sessionStore) Save(ctx context.Context, session *entity.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.TokenID)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.TokenID, data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w: %v", repository.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *sessionStore) Get(ctx context.Context, tokenID string) (*entity.Session, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+tokenID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w: %v", repository.ErrStoreUnavailable, err)
	}

	var session entity.Session
	if err := json.Unmarshal(val, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *sessionStore) Delete(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("delete session: %w: %v", repository.ErrStoreUnavailable, err)
	}
	return nil
}
