package coronastats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisConfig struct {
	Server string
	Pass   string
	DB     int
}

type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

var _ Store = &RedisStore{}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	opts := redis.Options{Addr: cfg.Server,
		Password: cfg.Pass,
		DB:       cfg.DB}
	return redis.NewClient(&opts)
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

const dayLayout = "20060102"

func key(country string) string {
	return fmt.Sprintf("corona:stats:%s", strings.ReplaceAll(country, " ", ""))
}

func (r *RedisStore) IsFresh(ctx context.Context, country string, now time.Time) (bool, error) {
	day, err := r.client.HGet(ctx, key(country), "date").Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return day == now.Local().Format(dayLayout), nil
}

func (r *RedisStore) Write(ctx context.Context, country, body string) error {
	res := r.client.HSet(ctx, key(country), map[string]interface{}{
		"body": body,
		"date": r.now().Local().Format(dayLayout),
	})
	return res.Err()
}

func (r *RedisStore) Read(ctx context.Context, country string) (string, error) {
	body, err := r.client.HGet(ctx, key(country), "body").Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("no cached stats for %q", country)
	}
	return body, err
}
