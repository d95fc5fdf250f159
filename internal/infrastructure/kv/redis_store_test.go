package kv_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-turnos/internal/infrastructure/kv"
	"github.com/jhoicas/inventario-turnos/pkg/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := kv.NewRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_CicloDeVida(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	s := kv.NewRedisStore(client, "caja-1:")

	_, found, err := s.Get(ctx, "shift_p1")
	require.NoError(t, err)
	assert.False(t, found, "redis.Nil se traduce a no encontrado")

	require.NoError(t, s.Set(ctx, "shift_p1", []byte(`{"soldCash":1}`)))
	raw, err := mr.Get("caja-1:shift_p1")
	require.NoError(t, err, "la clave se guarda con el prefijo del dispositivo")
	assert.Equal(t, `{"soldCash":1}`, raw)
	assert.Zero(t, mr.TTL("caja-1:shift_p1"), "sin expiración")

	ok, err := s.SetNX(ctx, "shift_p1", []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, "shift_p1"))
	assert.False(t, mr.Exists("caja-1:shift_p1"))
}

func TestRedisStore_ErrorDeConexion(t *testing.T) {
	mr, client := newRedis(t)
	s := kv.NewRedisStore(client, "")
	mr.Close()

	_, _, err := s.Get(context.Background(), "shift_p1")
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), "shift_p1", []byte("{}")))
}

func TestNewRedisClient_SinServidor(t *testing.T) {
	_, err := kv.NewRedisClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
