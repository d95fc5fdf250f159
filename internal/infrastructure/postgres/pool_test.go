package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-turnos/pkg/config"
)

func TestPoolConfigFrom_TamañoYDial(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://pos:secret@db:5432/turnos?sslmode=disable",
		MaxConns:    7,
		MinConns:    1,
		ForceIPv4:   true,
	}
	pc, err := poolConfigFrom(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfigFrom_DSNInvalido(t *testing.T) {
	_, err := poolConfigFrom(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
