package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

func NewRedis() *redis.Client {
	redisConnOnce.Do(
		func() {
			redisConn = openRedisConn()
		},
	)

	return redisConn
}

func openRedisConn() *redis.Client {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	redisServer = miniRedis

	conn := redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)

	return conn
}

func ClearRedis(redis *redis.Client) error {
	return redis.FlushAll(context.TODO()).Err()
}

// FastForwardRedis expires keys as if d had elapsed.
func FastForwardRedis(d time.Duration) {
	if redisServer != nil {
		redisServer.FastForward(d)
	}
}

// RedisKeys lists every key currently stored.
func RedisKeys() []string {
	if redisServer == nil {
		return nil
	}
	return redisServer.Keys()
}
