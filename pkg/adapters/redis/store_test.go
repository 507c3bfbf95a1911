package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/markov/pkg/adapters/redis"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunSolutionStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	now := time.Now()
	clock := func() time.Time { return now }

	// Create store with 1s TTL
	store := redis.NewFromClient(client, redis.WithTTL(time.Second), redis.WithClock(clock))
	ctx := context.Background()

	// 1. Save
	require.NoError(t, store.Save(ctx, &domain.Solution{Name: "dice"}))

	// 2. Verify List (immediately)
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "dice")

	// 3. Fast Forward time in miniredis (for Key Expiration) and in the index clock
	mr.FastForward(2 * time.Second)
	now = now.Add(2 * time.Second)

	// 4. Verify Load (should fail)
	_, err = store.Load(ctx, "dice")
	assert.ErrorIs(t, err, domain.ErrSolutionNotFound)

	// 5. Verify List (lazily cleaned up)
	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	// Custom Prefix
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Solution{Name: "bridge"}))

	// Key should be "custom:app:bridge"
	assert.True(t, mr.Exists("custom:app:bridge"), "Expected key with custom prefix to exist")

	// Index should be "custom:app:index"
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bridge"}, list)
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"broken", "{not json"))

	_, err := store.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSolutionNotFound)
	assert.Contains(t, err.Error(), "unmarshal")
}
