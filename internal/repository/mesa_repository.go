package repository

import (
	"context"
	"database/sql"

	"github.com/leandrordg/api-restaurantes/internal/model"
)

type MesaRepo struct{ DB *sql.DB }

func NewMesaRepo(db *sql.DB) *MesaRepo { return &MesaRepo{DB: db} }

const mesaCols = "id,nome,capacidade,status,created_at"

func scanMesa(row *sql.Row) (model.Mesa, error) {
	var m model.Mesa
	err := row.Scan(&m.ID, &m.Nome, &m.Capacidade, &m.Status, &m.CreatedAt)
	return m, err
}

// List returns every mesa ordered by name ascending.
func (r *MesaRepo) List(ctx context.Context) ([]model.Mesa, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+mesaCols+" FROM mesas ORDER BY nome ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mesas := make([]model.Mesa, 0)
	for rows.Next() {
		var m model.Mesa
		if err := rows.Scan(&m.ID, &m.Nome, &m.Capacidade, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		mesas = append(mesas, m)
	}
	return mesas, rows.Err()
}

// GetByID fetches a mesa by id. Returns sql.ErrNoRows when absent.
func (r *MesaRepo) GetByID(ctx context.Context, id uint64) (model.Mesa, error) {
	return scanMesa(r.DB.QueryRowContext(ctx,
		"SELECT "+mesaCols+" FROM mesas WHERE id=? LIMIT 1", id))
}

// GetByIDForUpdateTx reads a mesa inside tx with a row lock, serializing
// concurrent bookings on the same mesa until the transaction ends.
func (r *MesaRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Mesa, error) {
	var m model.Mesa
	err := tx.QueryRowContext(ctx,
		"SELECT "+mesaCols+" FROM mesas WHERE id=? LIMIT 1 FOR UPDATE",
		id).Scan(&m.ID, &m.Nome, &m.Capacidade, &m.Status, &m.CreatedAt)
	return m, err
}

// Create inserts a mesa and returns the stored row. A duplicate name
// surfaces as ErrMesaNomeExists via the unique index on mesas.nome.
func (r *MesaRepo) Create(ctx context.Context, nome string, capacidade uint32, status string) (model.Mesa, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO mesas (nome, capacidade, status) VALUES (?,?,?)",
		nome, capacidade, status)
	if err != nil {
		if isDuplicate(err) {
			return model.Mesa{}, ErrMesaNomeExists
		}
		return model.Mesa{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Mesa{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update applies nome, capacidade and status to an existing mesa and
// returns the updated row. Returns sql.ErrNoRows when the id is absent
// and ErrMesaNomeExists when another mesa already owns the name.
func (r *MesaRepo) Update(ctx context.Context, id uint64, nome string, capacidade uint32, status string) (model.Mesa, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Mesa{}, err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE mesas SET nome=?, capacidade=?, status=? WHERE id=?",
		nome, capacidade, status, id)
	if err != nil {
		if isDuplicate(err) {
			return model.Mesa{}, ErrMesaNomeExists
		}
		return model.Mesa{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a mesa and returns the deleted row. Returns
// sql.ErrNoRows when the id is absent. Reservations referencing the
// mesa are removed by the schema's ON DELETE CASCADE.
func (r *MesaRepo) Delete(ctx context.Context, id uint64) (model.Mesa, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Mesa{}, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM mesas WHERE id=?", id); err != nil {
		return model.Mesa{}, err
	}
	return m, nil
}

// UpdateStatusTx flips a mesa's status inside an open transaction. Used
// by the booking and cancellation flows to keep the denormalized status
// flag consistent with the reservation ledger.
func (r *MesaRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, "UPDATE mesas SET status=? WHERE id=?", status, id)
	return err
}
