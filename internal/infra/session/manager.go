package session

import (
	"context"
	"encoding/json"
	"time"

	"archive/config"
	"archive/internal/domain/entity"
	"archive/internal/domain/service"
	"archive/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// redisSessionManager implements service.SessionManager on Redis. Each
// session is a key holding the identity snapshot as JSON, expiring with the
// configured TTL. Expiry in Redis is the only session timeout mechanism.
type redisSessionManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewManager is the constructor for redisSessionManager.
func NewManager(client *redis.Client, cfg *config.Config) service.SessionManager {
	return &redisSessionManager{
		client: client,
		ttl:    cfg.Session.TTL,
	}
}

// Bind stores the identity snapshot under a fresh opaque handle.
func (m *redisSessionManager) Bind(ctx context.Context, identity entity.Identity) (string, error) {
	now := time.Now()
	sess := entity.Session{
		Handle:    uuid.NewString(),
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal session")
	}

	if err := m.client.Set(ctx, keyPrefix+sess.Handle, payload, m.ttl).Err(); err != nil {
		return "", errors.Wrap(err, "failed to store session")
	}

	return sess.Handle, nil
}

// Resolve returns the identity bound to handle, or ErrSessionNotFound when
// the handle is unknown or the session has expired.
func (m *redisSessionManager) Resolve(ctx context.Context, handle string) (*entity.Identity, error) {
	if handle == "" {
		return nil, service.ErrSessionNotFound
	}

	payload, err := m.client.Get(ctx, keyPrefix+handle).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	var sess entity.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	return &sess.Identity, nil
}

// Invalidate discards the session. Deleting an unknown handle is a no-op.
func (m *redisSessionManager) Invalidate(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}

	if err := m.client.Del(ctx, keyPrefix+handle).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}
