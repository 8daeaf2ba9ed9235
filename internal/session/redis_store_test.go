package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrisa/internal/domain"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cipher, err := NewCipher("test-secret")
	require.NoError(t, err)
	return NewRedisStoreWithClient(client, cipher), mr
}

func TestRedisStore_SaveGetDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	instID := int64(3)
	sess := &Session{
		ID:            "sess-1",
		UserID:        10,
		Email:         "head@inst.example",
		FirstName:     "Ana",
		InstitutionID: &instID,
		Role:          domain.RoleInstitutionHead,
		RoleStatus:    domain.StatusApproved,
		AccessToken:   "upstream-access",
		RefreshToken:  "upstream-refresh",
	}

	raw, hash, err := NewToken("pepper")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	require.NoError(t, store.Save(ctx, hash, sess, time.Hour))

	got, err := store.Get(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, domain.RoleInstitutionHead, got.Role)
	assert.Equal(t, "upstream-access", got.AccessToken)
	assert.Equal(t, "upstream-refresh", got.RefreshToken)
	require.NotNil(t, got.InstitutionID)
	assert.Equal(t, instID, *got.InstitutionID)

	require.NoError(t, store.Delete(ctx, hash))
	_, err = store.Get(ctx, hash)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TokensAreNotStoredInPlaintext(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	sess := &Session{ID: "sess-2", UserID: 1, Role: domain.RoleCitizen, AccessToken: "very-secret-access"}
	require.NoError(t, store.Save(ctx, "hash-x", sess, time.Hour))

	stored, err := mr.Get(redisKeyPrefix + "hash-x")
	require.NoError(t, err)
	assert.NotContains(t, stored, "very-secret-access")
}

func TestRedisStore_ExpiryEvicts(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	sess := &Session{ID: "sess-3", UserID: 2, Role: domain.RoleCitizen}
	require.NoError(t, store.Save(ctx, "hash-y", sess, time.Minute))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, "hash-y")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_UnknownTokenHash(t *testing.T) {
	store, _ := newTestRedisStore(t)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
