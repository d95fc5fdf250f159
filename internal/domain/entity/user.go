package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del sistema (cajero o administrador).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, user
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario administra catálogo y turnos.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
