package store

import (
	"context"
	"fmt"
	"hourbox/database"
	"hourbox/database/model"
	L "hourbox/logger"
	"time"

	"github.com/redis/go-redis/v9"
)

const REDIS_KEY_PREFIX = "hourbox:sessions:"

type redisStore struct {
	client *redis.Client
}

// OpenRedis accepts redis://host:port or redis://host:port/db.
func OpenRedis(ctx context.Context, redisURL string) (Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	L.Debug(fmt.Sprintf("connected to redis at %s", opts.Addr))
	return &redisStore{client: client}, nil
}

func redisKey(userId string) string {
	return REDIS_KEY_PREFIX + userId
}

func (r *redisStore) Get(ctx context.Context, userId string) (*model.SessionDocument, error) {
	values, err := r.client.HGetAll(ctx, redisKey(userId)).Result()
	if err != nil {
		return nil, fmt.Errorf("could not get session document for %s: %w", userId, err)
	}
	document, ok := values["document"]
	if !ok {
		return nil, database.ErrDoesNotExist
	}
	updatedAt, _ := time.Parse(time.RFC3339Nano, values["updated_at"])
	return &model.SessionDocument{UserId: userId, Document: document, UpdatedAt: updatedAt}, nil
}

func (r *redisStore) Put(ctx context.Context, userId string, document string) error {
	err := r.client.HSet(ctx, redisKey(userId),
		"document", document,
		"updated_at", time.Now().UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("could not store session document for %s: %w", userId, err)
	}
	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
