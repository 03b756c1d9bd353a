package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leandrordg/api-restaurantes/internal/model"
	"github.com/leandrordg/api-restaurantes/internal/repository"
)

// MesaStore is the slice of the mesa repository the inventory
// endpoints need.
type MesaStore interface {
	List(ctx context.Context) ([]model.Mesa, error)
	Create(ctx context.Context, nome string, capacidade uint32, status string) (model.Mesa, error)
	Update(ctx context.Context, id uint64, nome string, capacidade uint32, status string) (model.Mesa, error)
	Delete(ctx context.Context, id uint64) (model.Mesa, error)
}

// MesaHandler implements the /mesas endpoints. Listing is public;
// mutations sit behind JWTAuth + RequireAdmin in the router.
type MesaHandler struct {
	Mesas MesaStore
}

func NewMesaHandler(m MesaStore) *MesaHandler { return &MesaHandler{Mesas: m} }

type mesaReq struct {
	Nome       string `json:"nome"`
	Capacidade uint32 `json:"capacidade"`
	Status     string `json:"status"`
}

func (r *mesaReq) validate() string {
	r.Nome = strings.TrimSpace(r.Nome)
	if r.Nome == "" {
		return "Nome é obrigatório."
	}
	if r.Capacidade == 0 {
		return "Capacidade deve ser maior que zero."
	}
	if !model.ValidMesaStatus(r.Status) {
		return "Status inválido."
	}
	return ""
}

// Listar handles GET /mesas, returning every mesa ordered by name.
func (h *MesaHandler) Listar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	mesas, err := h.Mesas.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao listar mesas.")
	}
	return respond(c, http.StatusOK, "Mesas disponíveis", mesas)
}

// Criar handles POST /mesas (admin only).
func (h *MesaHandler) Criar(c echo.Context) error {
	var req mesaReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Mesas.Create(ctx, req.Nome, req.Capacidade, req.Status)
	if err != nil {
		if err == repository.ErrMesaNomeExists {
			return fail(c, http.StatusBadRequest, fmt.Sprintf("Mesa (%s) já existe.", req.Nome))
		}
		return fail(c, http.StatusInternalServerError, "Erro ao criar mesa.")
	}
	return respond(c, http.StatusCreated, "Mesa criada com sucesso.", m)
}

// Atualizar handles PATCH /mesas/:id (admin only). All three fields are
// applied; administrators use it to force a mesa 'inativa' as well.
func (h *MesaHandler) Atualizar(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}
	var req mesaReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Mesas.Update(ctx, id, req.Nome, req.Capacidade, req.Status)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return fail(c, http.StatusNotFound, "Mesa não encontrada.")
		case repository.ErrMesaNomeExists:
			return fail(c, http.StatusBadRequest, fmt.Sprintf("Mesa (%s) já existe.", req.Nome))
		}
		return fail(c, http.StatusInternalServerError, "Erro ao atualizar mesa.")
	}
	return respond(c, http.StatusOK, "Mesa atualizada com sucesso.", m)
}

// Deletar handles DELETE /mesas/:id (admin only) and returns the
// removed row.
func (h *MesaHandler) Deletar(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Mesas.Delete(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "Mesa não encontrada.")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao deletar mesa.")
	}
	return respond(c, http.StatusOK, "Mesa deletada com sucesso.", m)
}
