package cache

import (
	"context"
	"encoding/json"
	"time"

	"blog-platform/internal/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "page__"

// RedisStore 是基于 Redis 的页面缓存实现
type RedisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(options *redis.Options) *RedisStore {
	return &RedisStore{
		redisClient: redis.NewClient(options),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool) {
	val, err := s.redisClient.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			util.Logger.Error("读取页面缓存失败", zap.Error(err), zap.String("key", key))
		}
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(val, &entry); err != nil {
		util.Logger.Error("解析页面缓存失败", zap.Error(err), zap.String("key", key))
		return Entry{}, false
	}
	return entry, true
}

func (s *RedisStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) {
	bytes, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, redisKeyPrefix+key, bytes, ttl).Err(); err != nil {
		util.Logger.Error("写入页面缓存失败", zap.Error(err), zap.String("key", key))
	}
}

func (s *RedisStore) Flush(ctx context.Context) error {
	keys, err := s.redisClient.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.redisClient.Del(ctx, keys...).Err()
}
