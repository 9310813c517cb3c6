// Package cache adaptador Redis para los casos de uso que cachean lecturas.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stockmaster/stockmaster-pro/internal/application/analytics"
)

// ErrCacheMiss se retorna cuando la clave no existe en el cache.
var ErrCacheMiss = redis.Nil

var _ analytics.Cache = (*RedisClient)(nil)

// RedisClient implementación del puerto de cache sobre Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient crea el cliente y verifica la conexión con un PING.
func NewRedisClient(addr string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &RedisClient{rdb: rdb}, nil
}

// Get recupera el valor de una clave. Retorna ErrCacheMiss si no existe.
func (c *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err // redis.Nil == ErrCacheMiss
	}
	return val, nil
}

// Set guarda un valor con tiempo de expiración.
func (c *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Delete elimina una clave (sin error si no existe).
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close cierra la conexión subyacente.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
