package form

import (
	"context"
	"testing"
	"time"

	apperrors "agency-forms/internal/common/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCachedRepo(t *testing.T) (*CachedTemplateRepository, *memoryRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := newMemoryRepo()
	return NewCachedTemplateRepository(inner, client, time.Minute, zap.NewNop()), inner, mr
}

func TestCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	repo, inner, mr := newCachedRepo(t)

	tmpl := quoteTemplate()
	require.NoError(t, repo.Create(ctx, tmpl))
	id := tmpl.ID.Hex()

	first, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cacheKey(id)))

	second, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets, "second read is served from redis")
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, len(first.Fields()), len(second.Fields()))
	assert.Equal(t, first.Sections[2].LineOfBusiness, second.Sections[2].LineOfBusiness)

	ttl := mr.TTL(cacheKey(id))
	assert.Equal(t, time.Minute, ttl)
}

func TestCacheEvictsOnUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo, inner, mr := newCachedRepo(t)

	tmpl := quoteTemplate()
	require.NoError(t, repo.Create(ctx, tmpl))
	id := tmpl.ID.Hex()

	_, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	inactive := false
	require.NoError(t, repo.UpdateMeta(ctx, id, TemplateUpdate{IsActive: &inactive}))
	assert.False(t, mr.Exists(cacheKey(id)))

	updated, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 2, inner.gets)

	require.NoError(t, repo.Delete(ctx, id))
	assert.False(t, mr.Exists(cacheKey(id)))

	_, err = repo.GetByID(ctx, id)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTemplateNotFound))
}

func TestCacheFallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	repo, _, mr := newCachedRepo(t)

	tmpl := quoteTemplate()
	require.NoError(t, repo.Create(ctx, tmpl))
	mr.Close()

	got, err := repo.GetByID(ctx, tmpl.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Quote", got.Name)
}

func TestCacheIgnoresCorruptEntries(t *testing.T) {
	ctx := context.Background()
	repo, inner, mr := newCachedRepo(t)

	tmpl := quoteTemplate()
	require.NoError(t, repo.Create(ctx, tmpl))
	require.NoError(t, mr.Set(cacheKey(tmpl.ID.Hex()), "{not json"))

	got, err := repo.GetByID(ctx, tmpl.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Quote", got.Name)
	assert.Equal(t, 1, inner.gets)
}
