package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/leandrordg/api-restaurantes/internal/model"
)

// ReservaRepo provides access to the reservation ledger. Reservation
// timestamps are stored in UTC. Booking runs inside a transaction
// owned by the handler; the Tx variants here operate on that
// transaction so the insert and the mesa status flip commit or roll
// back as one unit.
type ReservaRepo struct{ DB *sql.DB }

func NewReservaRepo(db *sql.DB) *ReservaRepo { return &ReservaRepo{DB: db} }

const reservaCols = "id,usuario_id,mesa_id,data_reserva,status,created_at"

// ListByUsuario returns the caller's reservations grouped by status
// ascending and, within each group, most recent reservation time first.
func (r *ReservaRepo) ListByUsuario(ctx context.Context, usuarioID uint64) ([]model.Reserva, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reservaCols+" FROM reservas WHERE usuario_id=? ORDER BY status ASC, data_reserva DESC",
		usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservas := make([]model.Reserva, 0)
	for rows.Next() {
		var rv model.Reserva
		if err := rows.Scan(&rv.ID, &rv.UsuarioID, &rv.MesaID, &rv.DataReserva, &rv.Status, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reservas = append(reservas, rv)
	}
	return reservas, rows.Err()
}

// GetByIDForUsuario fetches a reservation scoped to its owner. The
// ownership predicate is part of the lookup, so a foreign caller gets
// sql.ErrNoRows rather than a hint that the row exists.
func (r *ReservaRepo) GetByIDForUsuario(ctx context.Context, id, usuarioID uint64) (model.Reserva, error) {
	var rv model.Reserva
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+reservaCols+" FROM reservas WHERE id=? AND usuario_id=? LIMIT 1",
		id, usuarioID).Scan(&rv.ID, &rv.UsuarioID, &rv.MesaID, &rv.DataReserva, &rv.Status, &rv.CreatedAt)
	return rv, err
}

// ActiveExistsTx reports whether an active reservation already occupies
// the (mesa, data_reserva) slot. Runs inside the booking transaction so
// the check is consistent with the locked mesa row.
func (r *ReservaRepo) ActiveExistsTx(ctx context.Context, tx *sql.Tx, mesaID uint64, dataReserva time.Time) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservas WHERE mesa_id=? AND data_reserva=? AND status=?",
		mesaID, dataReserva, model.ReservaAtiva).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts an active reservation inside tx and returns the
// stored row. The filtered unique index on (mesa_id, data_reserva,
// ativa) backstops the existence check; a duplicate surfaces as
// ErrHorarioReservado.
func (r *ReservaRepo) CreateTx(ctx context.Context, tx *sql.Tx, usuarioID, mesaID uint64, dataReserva time.Time) (model.Reserva, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO reservas (usuario_id, mesa_id, data_reserva, status) VALUES (?,?,?,?)",
		usuarioID, mesaID, dataReserva, model.ReservaAtiva)
	if err != nil {
		if isDuplicate(err) {
			return model.Reserva{}, ErrHorarioReservado
		}
		return model.Reserva{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Reserva{}, err
	}
	var rv model.Reserva
	err = tx.QueryRowContext(ctx,
		"SELECT "+reservaCols+" FROM reservas WHERE id=? LIMIT 1",
		uint64(id)).Scan(&rv.ID, &rv.UsuarioID, &rv.MesaID, &rv.DataReserva, &rv.Status, &rv.CreatedAt)
	return rv, err
}

// UpdateStatusTx flips a reservation's status inside tx.
func (r *ReservaRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, "UPDATE reservas SET status=? WHERE id=?", status, id)
	return err
}
