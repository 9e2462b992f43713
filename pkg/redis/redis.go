package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type IRedis interface {
	// HitWindow counts one hit for key in a fixed window and returns the
	// number of hits seen in the current window.
	HitWindow(ctx context.Context, key string, window time.Duration) (int64, error)
	Close() error
}

type Options struct {
	Address  string
	Password string
	DB       int
}

type redisClient struct {
	client *redis.Client
}

func New(opts Options) IRedis {
	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", opts.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) HitWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		logrus.Error(fmt.Sprintf("Error counting hit for key %s: %v", key, err))
		return 0, err
	}

	logrus.Debug(fmt.Sprintf("Key %s hit %d times in window", key, incr.Val()))
	return incr.Val(), nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
