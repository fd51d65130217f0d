package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"ledger/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings of the redis notifier.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisNotifier publishes notifications as JSON on a pub/sub channel.
type RedisNotifier struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisNotifier(client redis.UniversalClient, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) NotifyAboutTransfer(ctx context.Context, account *models.Account, message string) error {
	payload, err := json.Marshal(newNotification(account, message))
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification for account %s: %w", account.ID, err)
	}
	return nil
}
