package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vrisa/internal/domain"
)

const redisKeyPrefix = "session:"

// redisPayload mirrors sessionRow for the Redis backend; tokens are sealed.
type redisPayload struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"user_id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	InstitutionID *int64    `json:"institution_id,omitempty"`
	Role          string    `json:"role"`
	RoleStatus    string    `json:"role_status"`
	AccessToken   string    `json:"access_token"`
	RefreshToken  string    `json:"refresh_token"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// RedisStore is the session backend for multi-instance deploys; expiry is
// delegated to Redis TTLs.
type RedisStore struct {
	client *redis.Client
	cipher *Cipher
}

func NewRedisStore(redisURL string, cipher *Cipher) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client, cipher: cipher}, nil
}

// NewRedisStoreWithClient wraps an existing client; used by tests.
func NewRedisStoreWithClient(client *redis.Client, cipher *Cipher) *RedisStore {
	return &RedisStore{client: client, cipher: cipher}
}

func (s *RedisStore) key(tokenHash string) string { return redisKeyPrefix + tokenHash }

func (s *RedisStore) Save(ctx context.Context, tokenHash string, sess *Session, ttl time.Duration) error {
	access, err := s.cipher.Seal(sess.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := s.cipher.Seal(sess.RefreshToken)
	if err != nil {
		return err
	}

	now := time.Now()
	payload := redisPayload{
		ID:            sess.ID,
		UserID:        sess.UserID,
		Email:         sess.Email,
		FirstName:     sess.FirstName,
		InstitutionID: sess.InstitutionID,
		Role:          string(sess.Role),
		RoleStatus:    string(sess.RoleStatus),
		AccessToken:   access,
		RefreshToken:  refresh,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := s.client.Set(ctx, s.key(tokenHash), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, tokenHash string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.key(tokenHash)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	var payload redisPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	access, err := s.cipher.Open(payload.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := s.cipher.Open(payload.RefreshToken)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:            payload.ID,
		UserID:        payload.UserID,
		Email:         payload.Email,
		FirstName:     payload.FirstName,
		InstitutionID: payload.InstitutionID,
		Role:          domain.NormalizeRole(payload.Role),
		RoleStatus:    domain.RoleStatus(payload.RoleStatus),
		AccessToken:   access,
		RefreshToken:  refresh,
		CreatedAt:     payload.CreatedAt,
		ExpiresAt:     payload.ExpiresAt,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, s.key(tokenHash)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
