package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelEngagementUpdates = "engagement_updates"
)

// EngagementMessage 互动计数更新消息
type EngagementMessage struct {
	Type     string `json:"type"`
	VideoID  int64  `json:"video_id"`
	Views    int    `json:"views"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishEngagement 发布互动更新消息
func (p *Publisher) PublishEngagement(ctx context.Context, msg *EngagementMessage) error {
	msg.Type = "engagement_update"

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement message: %w", err)
	}

	return p.client.Publish(ctx, ChannelEngagementUpdates, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅互动更新消息，阻塞直到 ctx 取消
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*EngagementMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelEngagementUpdates)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var engagementMsg EngagementMessage
			if err := json.Unmarshal([]byte(msg.Payload), &engagementMsg); err != nil {
				continue // 忽略解析错误
			}

			handler(&engagementMsg)
		}
	}
}
