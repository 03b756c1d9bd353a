package model

import "time"

// Reservation lifecycle. A reservation is created as 'ativo' and may
// transition to 'cancelado' exactly once; 'cancelado' is terminal.
const (
	ReservaAtiva     = "ativo"
	ReservaCancelada = "cancelado"
)

// Reserva mirrors the 'reservas' table. It links a user to a mesa at a
// point in time and carries the lifecycle status. Rows are never hard
// deleted; cancellation only flips Status.
type Reserva struct {
	ID          uint64    `json:"id"`
	UsuarioID   uint64    `json:"usuario_id"`
	MesaID      uint64    `json:"mesa_id"`
	DataReserva time.Time `json:"data_reserva"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
