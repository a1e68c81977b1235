package favorite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// RedisStore 以 sorted set 存放收藏，score 為每位使用者遞增的序號
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 連線 Redis 並確認可用
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Favorite store connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return NewRedisStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreWithClient 使用既有的 client
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(userID string) string {
	return fmt.Sprintf("%sfavorites:%s", s.prefix, userID)
}

func (s *RedisStore) seqKey(userID string) string {
	return s.key(userID) + ":seq"
}

// Add 加入收藏；已存在時回傳 false 且不改變原本的順序
func (s *RedisStore) Add(ctx context.Context, userID, recipeID string) (bool, error) {
	seq, err := s.client.Incr(ctx, s.seqKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to allocate favorite sequence: %w", err)
	}

	n, err := s.client.ZAddNX(ctx, s.key(userID), &redis.Z{
		Score:  float64(seq),
		Member: recipeID,
	}).Result()
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return n == 1, nil
}

// Remove 移除收藏；不存在時回傳 ErrNotFound
func (s *RedisStore) Remove(ctx context.Context, userID, recipeID string) error {
	n, err := s.client.ZRem(ctx, s.key(userID), recipeID).Result()
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List 依加入順序列出收藏
func (s *RedisStore) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.client.ZRange(ctx, s.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}

// IsFavorite 是否已收藏
func (s *RedisStore) IsFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	err := s.client.ZScore(ctx, s.key(userID), recipeID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return true, nil
}

// Ping 健康檢查用
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
