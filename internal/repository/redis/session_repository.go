package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"scoutIO/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxUpdateRetries = 5

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (r *SessionRepository) Save(ctx context.Context, session domain.ShoppingSession, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (domain.ShoppingSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.ShoppingSession{}, fmt.Errorf("context error: %w", err)
	}

	return r.get(ctx, r.client, id)
}

// Update runs fn against the stored session inside a WATCH transaction and
// refreshes the TTL. Concurrent writers are retried.
func (r *SessionRepository) Update(ctx context.Context, id string, ttl time.Duration, fn func(*domain.ShoppingSession) error) (domain.ShoppingSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.ShoppingSession{}, fmt.Errorf("context error: %w", err)
	}

	key := sessionKey(id)
	var updated domain.ShoppingSession

	txf := func(tx *redis.Tx) error {
		sess, err := r.get(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := fn(&sess); err != nil {
			return err
		}

		jsonData, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, jsonData, ttl)
			return nil
		})
		if err == nil {
			updated = sess
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ShoppingSession{}, err
		}
		return domain.ShoppingSession{}, fmt.Errorf("failed to update session: %w", err)
	}

	return domain.ShoppingSession{}, fmt.Errorf("failed to update session: too much contention on %s", key)
}

func (r *SessionRepository) get(ctx context.Context, c getter, id string) (domain.ShoppingSession, error) {
	val, err := c.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ShoppingSession{}, domain.ErrSessionNotFound
		}
		return domain.ShoppingSession{}, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var sess domain.ShoppingSession
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return domain.ShoppingSession{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return sess, nil
}
