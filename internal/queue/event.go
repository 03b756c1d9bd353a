// Package queue defines the message payloads exchanged over the broker
// and the background consumer that records them.
package queue

// Queue names for reservation lifecycle events.
const (
	ReservaConfirmada = "reserva.confirmada"
	ReservaCancelada  = "reserva.cancelada"
)

// ReservaEvent is published after a booking is confirmed or cancelled.
// It carries identifiers and timestamps only; consumers that need more
// detail query the primary database.
type ReservaEvent struct {
	ReservaID   uint64 `json:"reserva_id"`
	UsuarioID   uint64 `json:"usuario_id"`
	MesaID      uint64 `json:"mesa_id"`
	DataReserva string `json:"data_reserva"`
	OcorreuEm   string `json:"ocorreu_em"`
}
