package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/leandrordg/api-restaurantes/internal/model"
)

// ErrCapacidadeInsuficiente is returned when the requested party size
// exceeds the mesa's capacity.
var ErrCapacidadeInsuficiente = errors.New("mesa does not accommodate requested capacity")

// ErrReservaJaCancelada is returned when cancelling a reservation that
// was already cancelled.
var ErrReservaJaCancelada = errors.New("reserva already cancelled")

// ReservaLedger coordinates the cross-entity booking and cancellation
// flows. Both operations mutate a reservation row and the owning
// mesa's denormalized status flag; the ledger wraps the two writes in
// one transaction so a failure can never leave them disagreeing.
type ReservaLedger struct {
	DB       *sql.DB
	Mesas    *MesaRepo
	Reservas *ReservaRepo
}

func NewReservaLedger(db *sql.DB, mesas *MesaRepo, reservas *ReservaRepo) *ReservaLedger {
	return &ReservaLedger{DB: db, Mesas: mesas, Reservas: reservas}
}

// ListByUsuario returns the caller's reservations.
func (l *ReservaLedger) ListByUsuario(ctx context.Context, usuarioID uint64) ([]model.Reserva, error) {
	return l.Reservas.ListByUsuario(ctx, usuarioID)
}

// Criar books a mesa for a user at a point in time. The mesa row is
// read under FOR UPDATE so two concurrent bookings for the same mesa
// serialize; the filtered unique index on reservas backstops the
// existence check against callers racing on different mesas rows.
//
// Returns sql.ErrNoRows when the mesa does not exist,
// ErrCapacidadeInsuficiente when the party does not fit and
// ErrHorarioReservado when the slot already has an active reservation.
func (l *ReservaLedger) Criar(ctx context.Context, usuarioID, mesaID uint64, capacidade uint32, dataReserva time.Time) (model.Reserva, error) {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Reserva{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	mesa, err := l.Mesas.GetByIDForUpdateTx(ctx, tx, mesaID)
	if err != nil {
		return model.Reserva{}, err
	}
	if mesa.Capacidade < capacidade {
		return model.Reserva{}, ErrCapacidadeInsuficiente
	}

	ocupada, err := l.Reservas.ActiveExistsTx(ctx, tx, mesaID, dataReserva)
	if err != nil {
		return model.Reserva{}, err
	}
	if ocupada {
		return model.Reserva{}, ErrHorarioReservado
	}

	reserva, err := l.Reservas.CreateTx(ctx, tx, usuarioID, mesaID, dataReserva)
	if err != nil {
		return model.Reserva{}, err
	}
	if err := l.Mesas.UpdateStatusTx(ctx, tx, mesaID, model.MesaReservada); err != nil {
		return model.Reserva{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Reserva{}, err
	}
	committed = true
	return reserva, nil
}

// Cancelar transitions a reservation from ativo to cancelado and
// releases the mesa. The lookup is scoped to (id, usuario_id), so a
// caller cancelling someone else's reservation sees sql.ErrNoRows; the
// existence check therefore runs before any status inspection.
func (l *ReservaLedger) Cancelar(ctx context.Context, usuarioID, reservaID uint64) (model.Reserva, error) {
	reserva, err := l.Reservas.GetByIDForUsuario(ctx, reservaID, usuarioID)
	if err != nil {
		return model.Reserva{}, err
	}
	if reserva.Status == model.ReservaCancelada {
		return model.Reserva{}, ErrReservaJaCancelada
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Reserva{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := l.Reservas.UpdateStatusTx(ctx, tx, reservaID, model.ReservaCancelada); err != nil {
		return model.Reserva{}, err
	}
	if err := l.Mesas.UpdateStatusTx(ctx, tx, reserva.MesaID, model.MesaDisponivel); err != nil {
		return model.Reserva{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Reserva{}, err
	}
	committed = true

	reserva.Status = model.ReservaCancelada
	return reserva, nil
}
