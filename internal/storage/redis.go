package storage

import (
	"context"
	"encoding/json"
	"shortlink-service/config"
	"shortlink-service/internal/service"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func ConnectRedis(cfg *config.RedisConfig, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
		return nil
	}

	log.Info("Подключение к Redis успешно установлено")
	return client
}

func CloseRedis(client *redis.Client, log *zap.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Error("Ошибка при закрытии соединения с Redis", zap.Error(err))
	}
}

// LinkCache — кеш редиректов поверх Redis. Ошибки кеша не фатальны:
// промах просто уводит запрос в БД.
type LinkCache struct {
	client *redis.Client
	log    *zap.Logger
}

func NewLinkCache(client *redis.Client, log *zap.Logger) *LinkCache {
	return &LinkCache{
		client: client,
		log:    log,
	}
}

func cacheKey(code string) string {
	return "shortlink:" + code
}

func (c *LinkCache) Get(ctx context.Context, code string) (*service.CachedLink, bool) {
	raw, err := c.client.Get(ctx, cacheKey(code)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Ошибка чтения из кеша редиректов", zap.Error(err))
		}
		return nil, false
	}

	var cached service.CachedLink
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		c.log.Warn("Повреждённая запись в кеше редиректов", zap.String("code", code), zap.Error(err))
		return nil, false
	}
	return &cached, true
}

func (c *LinkCache) Set(ctx context.Context, code string, link service.CachedLink, ttl time.Duration) {
	raw, err := json.Marshal(link)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(code), raw, ttl).Err(); err != nil {
		c.log.Warn("Ошибка записи в кеш редиректов", zap.Error(err))
	}
}

func (c *LinkCache) Invalidate(ctx context.Context, code string) {
	if err := c.client.Del(ctx, cacheKey(code)).Err(); err != nil {
		c.log.Warn("Ошибка инвалидации кеша редиректов", zap.Error(err))
	}
}
