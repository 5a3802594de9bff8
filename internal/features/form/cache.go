package form

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"agency-forms/internal/config"
	"agency-forms/internal/database"
	"agency-forms/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const templateCachePrefix = "form_template:"

// CachedTemplateRepository is a read-through Redis cache of assembled template trees.
// Every mutation evicts the cached entry. Redis failures degrade to the inner repository.
type CachedTemplateRepository struct {
	inner  TemplateRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedTemplateRepository(inner TemplateRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedTemplateRepository {
	return &CachedTemplateRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// NewTemplateRepository puts the Redis cache in front of the Mongo store.
func NewTemplateRepository(store *MongoTemplateRepository, rdb *database.RedisClient, cfg *config.Config, logger *zap.Logger) TemplateRepository {
	return NewCachedTemplateRepository(store, rdb.Client, cfg.TemplateCacheTTL, logger)
}

func cacheKey(id string) string {
	return templateCachePrefix + id
}

func (r *CachedTemplateRepository) Create(ctx context.Context, template *FormTemplate) error {
	return r.inner.Create(ctx, template)
}

func (r *CachedTemplateRepository) GetByID(ctx context.Context, id string) (*FormTemplate, error) {
	raw, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		var template FormTemplate
		if err := json.Unmarshal(raw, &template); err == nil {
			metrics.TemplateCacheRequests.WithLabelValues("hit").Inc()
			return &template, nil
		}
		r.logger.Warn("Discarding unreadable cached template", zap.String("template_id", id))
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Warn("Template cache read failed", zap.String("template_id", id), zap.Error(err))
	}
	metrics.TemplateCacheRequests.WithLabelValues("miss").Inc()

	template, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(template); err == nil {
		if err := r.client.Set(ctx, cacheKey(id), data, r.ttl).Err(); err != nil {
			r.logger.Warn("Template cache write failed", zap.String("template_id", id), zap.Error(err))
		}
	}
	return template, nil
}

func (r *CachedTemplateRepository) List(ctx context.Context, filter ListFilter) ([]FormTemplate, error) {
	return r.inner.List(ctx, filter)
}

func (r *CachedTemplateRepository) UpdateMeta(ctx context.Context, id string, update TemplateUpdate) error {
	err := r.inner.UpdateMeta(ctx, id, update)
	r.evict(ctx, id)
	return err
}

func (r *CachedTemplateRepository) Delete(ctx context.Context, id string) error {
	err := r.inner.Delete(ctx, id)
	r.evict(ctx, id)
	return err
}

func (r *CachedTemplateRepository) evict(ctx context.Context, id string) {
	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		r.logger.Warn("Template cache eviction failed", zap.String("template_id", id), zap.Error(err))
	}
}
