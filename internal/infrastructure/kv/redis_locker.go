package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
)

var _ appshift.Locker = (*RedisLocker)(nil)

const (
	lockTTL     = 10 * time.Second
	lockWait    = 3 * time.Second
	lockBackoff = 20 * time.Millisecond
)

// RedisLocker Locker compartido entre procesos que escriben el mismo libro en Redis.
// El lock expira a los 10s si el proceso que lo tiene muere sin liberarlo.
type RedisLocker struct {
	client *redislock.Client
	prefix string
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisLocker construye el locker con el mismo prefijo que el RedisStore del libro.
func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{client: redislock.New(client), prefix: prefix, ttl: lockTTL, wait: lockWait}
}

// Lock reintenta hasta obtener la clave; sin deadline en ctx espera como máximo 3s.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}
	lock, err := l.client.Obtain(ctx, l.prefix+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(lockBackoff),
	})
	if err != nil {
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = lock.Release(releaseCtx)
	}, nil
}
