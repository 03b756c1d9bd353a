package model

import "time"

// Table status values. 'reservada' is a denormalized flag kept in sync
// with the reservation ledger by the booking and cancellation
// transactions; 'inativa' can only be forced by an administrator.
const (
	MesaDisponivel = "disponivel"
	MesaReservada  = "reservada"
	MesaInativa    = "inativa"
)

// ValidMesaStatus reports whether s is one of the accepted table states.
func ValidMesaStatus(s string) bool {
	return s == MesaDisponivel || s == MesaReservada || s == MesaInativa
}

// Mesa mirrors the 'mesas' table. Nome is unique across all tables.
type Mesa struct {
	ID         uint64    `json:"id"`
	Nome       string    `json:"nome"`
	Capacidade uint32    `json:"capacidade"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
