package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestIsInvalidText_UUIDMalFormado(t *testing.T) {
	assert.True(t, isInvalidText(fmt.Errorf("get: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, isInvalidText(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isInvalidText(errors.New("22P02")))
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%agua%`, likePattern("agua"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}
