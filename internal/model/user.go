package model

import "time"

// Roles assigned to users. New signups always receive RoleCliente;
// administrators are promoted directly in the database.
const (
	RoleCliente       = "cliente"
	RoleAdministrador = "administrador"
)

// User mirrors the 'usuarios' table. Senha holds the bcrypt hash and is
// never serialized back to clients.
type User struct {
	ID        uint64    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Senha     string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
