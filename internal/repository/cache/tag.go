package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	models "lorekeeper/internal/domain/models/campaign"
	campaignRepo "lorekeeper/internal/domain/repositories/campaign"
)

// CachedTagRepository wraps a TagRepository with a read-through cache of
// per-campaign tag lists. Redis failures are logged and fall through to the
// underlying repository.
//
// Lists are stored under a per-campaign generation that mutations bump. A
// list fetched while a mutation ran is written under the old generation,
// where no reader looks, and expires with the TTL.
type CachedTagRepository struct {
	next   campaignRepo.TagRepository
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// NewCachedTagRepository returns next decorated with the cache. Keys are
// namespaced by prefix so several deployments can share one Redis.
func NewCachedTagRepository(next campaignRepo.TagRepository, rdb *redis.Client, ttl time.Duration, prefix string, logger *slog.Logger) campaignRepo.TagRepository {
	return &CachedTagRepository{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

func (c *CachedTagRepository) genKey(campaignID string) string {
	return fmt.Sprintf("%stags:campaign:%s:gen", c.prefix, campaignID)
}

func (c *CachedTagRepository) listKey(campaignID string, gen int64) string {
	return fmt.Sprintf("%stags:campaign:%s:v%d", c.prefix, campaignID, gen)
}

func (c *CachedTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := c.next.Create(ctx, tag); err != nil {
		return err
	}
	c.invalidate(ctx, tag.CampaignID)
	return nil
}

func (c *CachedTagRepository) GetByID(ctx context.Context, campaignID, tagID string) (*models.Tag, error) {
	return c.next.GetByID(ctx, campaignID, tagID)
}

func (c *CachedTagRepository) ListByCampaign(ctx context.Context, campaignID string) ([]models.Tag, error) {
	genKey := c.genKey(campaignID)
	gen, err := c.rdb.Get(ctx, genKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("tag cache read failed", "key", genKey, "error", err)
		return c.next.ListByCampaign(ctx, campaignID)
	}
	key := c.listKey(campaignID, gen)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var tags []models.Tag
		if jsonErr := json.Unmarshal(data, &tags); jsonErr == nil {
			return tags, nil
		}
		c.logger.Warn("discarding corrupt tag cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("tag cache read failed", "key", key, "error", err)
	}

	tags, err := c.next.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(tags)
	if err != nil {
		return tags, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("tag cache write failed", "key", key, "error", err)
	}
	return tags, nil
}

func (c *CachedTagRepository) Delete(ctx context.Context, campaignID, tagID string) error {
	if err := c.next.Delete(ctx, campaignID, tagID); err != nil {
		return err
	}
	c.invalidate(ctx, campaignID)
	return nil
}

func (c *CachedTagRepository) invalidate(ctx context.Context, campaignID string) {
	key := c.genKey(campaignID)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		c.logger.Warn("tag cache invalidation failed", "key", key, "error", err)
	}
}
