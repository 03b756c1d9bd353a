package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leandrordg/api-restaurantes/internal/middleware"
	"github.com/leandrordg/api-restaurantes/internal/model"
	"github.com/leandrordg/api-restaurantes/internal/queue"
	"github.com/leandrordg/api-restaurantes/internal/repository"
	"github.com/leandrordg/api-restaurantes/internal/service"
)

// ReservaStore is the slice of the reservation ledger the /reservas
// endpoints need. The booking and cancellation operations are atomic
// inside the implementation; handlers only map their outcomes to HTTP.
type ReservaStore interface {
	ListByUsuario(ctx context.Context, usuarioID uint64) ([]model.Reserva, error)
	Criar(ctx context.Context, usuarioID, mesaID uint64, capacidade uint32, dataReserva time.Time) (model.Reserva, error)
	Cancelar(ctx context.Context, usuarioID, reservaID uint64) (model.Reserva, error)
}

// ReservaHandler implements the /reservas endpoints. All of them sit
// behind JWTAuth; the caller identity comes from the request context.
type ReservaHandler struct {
	Reservas ReservaStore
}

func NewReservaHandler(r ReservaStore) *ReservaHandler {
	return &ReservaHandler{Reservas: r}
}

type reservaReq struct {
	MesaID      uint64 `json:"mesa_id"`
	Capacidade  uint32 `json:"capacidade"`
	DataReserva string `json:"data_reserva"`
}

// validate checks shape only; cross-entity rules (capacity fit,
// conflicting bookings) belong to the ledger.
func (r *reservaReq) validate() (time.Time, string) {
	if r.MesaID == 0 {
		return time.Time{}, "Mesa é obrigatória."
	}
	if r.Capacidade == 0 {
		return time.Time{}, "Capacidade deve ser maior que zero."
	}
	t, err := time.Parse(time.RFC3339, r.DataReserva)
	if err != nil {
		return time.Time{}, "Data da reserva inválida."
	}
	return t.UTC(), ""
}

// Listar handles GET /reservas. The result is caller-scoped: grouped
// by status ascending, most recent reservation time first within each
// group.
func (h *ReservaHandler) Listar(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Token não fornecido")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservas, err := h.Reservas.ListByUsuario(ctx, user.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao listar reservas.")
	}
	return respond(c, http.StatusOK, "Reservas listadas com sucesso.", reservas)
}

// Criar handles POST /reservas. A missing mesa fails with 404, an
// undersized mesa with 400 and an occupied slot with 400; on success
// the mesa is flagged 'reservada' in the same transaction and a
// confirmation event is published best-effort.
func (h *ReservaHandler) Criar(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Token não fornecido")
	}
	var req reservaReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
	}
	dataReserva, msg := req.validate()
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reserva, err := h.Reservas.Criar(ctx, user.ID, req.MesaID, req.Capacidade, dataReserva)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return fail(c, http.StatusNotFound, "Mesa não encontrada.")
		case repository.ErrCapacidadeInsuficiente:
			return fail(c, http.StatusBadRequest, fmt.Sprintf("Mesa não comporta %d pessoas.", req.Capacidade))
		case repository.ErrHorarioReservado:
			return fail(c, http.StatusBadRequest, "Mesa já reservada para esse horário.")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao criar reserva.")
	}

	service.PublishReservaEvent(queue.ReservaConfirmada, queue.ReservaEvent{
		ReservaID:   reserva.ID,
		UsuarioID:   reserva.UsuarioID,
		MesaID:      reserva.MesaID,
		DataReserva: reserva.DataReserva.Format(time.RFC3339),
		OcorreuEm:   time.Now().UTC().Format(time.RFC3339),
	})

	return respond(c, http.StatusCreated, "Reserva criada com sucesso.", reserva)
}

// Cancelar handles PATCH /reservas/:id/cancelar. The ownership
// predicate is folded into the lookup, so cancelling another user's
// reservation reports 404 rather than leaking its existence.
func (h *ReservaHandler) Cancelar(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Token não fornecido")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "ID inválido.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reserva, err := h.Reservas.Cancelar(ctx, user.ID, id)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return fail(c, http.StatusNotFound, "Reserva não encontrada.")
		case repository.ErrReservaJaCancelada:
			return fail(c, http.StatusBadRequest, "Reserva já foi cancelada.")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao cancelar reserva.")
	}

	service.PublishReservaEvent(queue.ReservaCancelada, queue.ReservaEvent{
		ReservaID:   reserva.ID,
		UsuarioID:   reserva.UsuarioID,
		MesaID:      reserva.MesaID,
		DataReserva: reserva.DataReserva.Format(time.RFC3339),
		OcorreuEm:   time.Now().UTC().Format(time.RFC3339),
	})

	return respond(c, http.StatusOK, "Reserva cancelada com sucesso.", reserva)
}
