package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/cmac277/webgen4/internal/model/dto"
)

// EngagementCache 互动计数快照缓存。
// 读侧短 TTL 缓存，写侧提交后失效，过期前最多读到 TTL 内的旧快照，
// 但快照本身永远是某次完整提交后的状态。
type EngagementCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEngagementCache(client *redis.Client, ttl time.Duration) *EngagementCache {
	return &EngagementCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(videoID int64) string {
	return fmt.Sprintf("engagement:video:%d", videoID)
}

// Get 读取快照，未命中返回 nil（不是错误）
func (c *EngagementCache) Get(ctx context.Context, videoID int64) (*dto.EngagementSnapshot, error) {
	data, err := c.client.Get(ctx, cacheKey(videoID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get engagement snapshot: %w", err)
	}

	var snap dto.EngagementSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engagement snapshot: %w", err)
	}
	return &snap, nil
}

// Set 写入快照
func (c *EngagementCache) Set(ctx context.Context, videoID int64, snap *dto.EngagementSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement snapshot: %w", err)
	}
	return c.client.Set(ctx, cacheKey(videoID), data, c.ttl).Err()
}

// Invalidate 删除快照
func (c *EngagementCache) Invalidate(ctx context.Context, videoID int64) error {
	return c.client.Del(ctx, cacheKey(videoID)).Err()
}
