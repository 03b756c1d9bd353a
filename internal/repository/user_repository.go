package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/leandrordg/api-restaurantes/internal/model"
	"github.com/leandrordg/api-restaurantes/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a freshly hashed password and returns the
// stored row. Duplicate emails surface as ErrEmailExists via the unique
// index on usuarios.email.
func (r *UserRepo) Create(ctx context.Context, nome, email, senha string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(senha, cost)
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO usuarios (nome, email, senha, role) VALUES (?,?,?,?)",
		nome, email, hash, model.RoleCliente)
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,nome,email,senha,role,created_at FROM usuarios WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Nome, &u.Email, &u.Senha, &u.Role, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,nome,email,senha,role,created_at FROM usuarios WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Nome, &u.Email, &u.Senha, &u.Role, &u.CreatedAt)
	return u, err
}

// isDuplicate detects MySQL error 1062 (duplicate entry on a unique key).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
