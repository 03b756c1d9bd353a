package handler_test

// Test fixture: the real Echo router and middleware chain mounted over
// in-memory fakes of the repository layer. Tokens are issued with the
// same helper the login endpoint uses, so requests travel the exact
// path production traffic does.

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/leandrordg/api-restaurantes/internal/config"
	"github.com/leandrordg/api-restaurantes/internal/handler"
	"github.com/leandrordg/api-restaurantes/internal/model"
	"github.com/leandrordg/api-restaurantes/internal/repository"
	"github.com/leandrordg/api-restaurantes/internal/router"
	"github.com/leandrordg/api-restaurantes/internal/utils"
)

// ----- fakes -----

type fakeUserStore struct {
	byEmail map[string]model.User
	nextID  uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, nome, email, senha string, cost int) (model.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return model.User{}, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(senha, cost)
	if err != nil {
		return model.User{}, err
	}
	f.nextID++
	u := model.User{ID: f.nextID, Nome: nome, Email: email, Senha: hash, Role: model.RoleCliente, CreatedAt: time.Now().UTC()}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

type fakeMesaStore struct {
	mesas  map[uint64]*model.Mesa
	nextID uint64
}

func newFakeMesaStore() *fakeMesaStore {
	return &fakeMesaStore{mesas: map[uint64]*model.Mesa{}}
}

func (f *fakeMesaStore) nomeTaken(nome string, except uint64) bool {
	for _, m := range f.mesas {
		if m.Nome == nome && m.ID != except {
			return true
		}
	}
	return false
}

func (f *fakeMesaStore) List(_ context.Context) ([]model.Mesa, error) {
	out := make([]model.Mesa, 0, len(f.mesas))
	for _, m := range f.mesas {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (f *fakeMesaStore) Create(_ context.Context, nome string, capacidade uint32, status string) (model.Mesa, error) {
	if f.nomeTaken(nome, 0) {
		return model.Mesa{}, repository.ErrMesaNomeExists
	}
	f.nextID++
	m := &model.Mesa{ID: f.nextID, Nome: nome, Capacidade: capacidade, Status: status, CreatedAt: time.Now().UTC()}
	f.mesas[m.ID] = m
	return *m, nil
}

func (f *fakeMesaStore) Update(_ context.Context, id uint64, nome string, capacidade uint32, status string) (model.Mesa, error) {
	m, ok := f.mesas[id]
	if !ok {
		return model.Mesa{}, sql.ErrNoRows
	}
	if f.nomeTaken(nome, id) {
		return model.Mesa{}, repository.ErrMesaNomeExists
	}
	m.Nome, m.Capacidade, m.Status = nome, capacidade, status
	return *m, nil
}

func (f *fakeMesaStore) Delete(_ context.Context, id uint64) (model.Mesa, error) {
	m, ok := f.mesas[id]
	if !ok {
		return model.Mesa{}, sql.ErrNoRows
	}
	delete(f.mesas, id)
	return *m, nil
}

// fakeLedger mirrors the transactional semantics of
// repository.ReservaLedger over the fakeMesaStore's data.
type fakeLedger struct {
	mesas    *fakeMesaStore
	reservas map[uint64]*model.Reserva
	nextID   uint64
}

func newFakeLedger(mesas *fakeMesaStore) *fakeLedger {
	return &fakeLedger{mesas: mesas, reservas: map[uint64]*model.Reserva{}}
}

func (f *fakeLedger) ListByUsuario(_ context.Context, usuarioID uint64) ([]model.Reserva, error) {
	out := make([]model.Reserva, 0)
	for _, r := range f.reservas {
		if r.UsuarioID == usuarioID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status < out[j].Status
		}
		return out[i].DataReserva.After(out[j].DataReserva)
	})
	return out, nil
}

func (f *fakeLedger) Criar(_ context.Context, usuarioID, mesaID uint64, capacidade uint32, dataReserva time.Time) (model.Reserva, error) {
	mesa, ok := f.mesas.mesas[mesaID]
	if !ok {
		return model.Reserva{}, sql.ErrNoRows
	}
	if mesa.Capacidade < capacidade {
		return model.Reserva{}, repository.ErrCapacidadeInsuficiente
	}
	for _, r := range f.reservas {
		if r.MesaID == mesaID && r.DataReserva.Equal(dataReserva) && r.Status == model.ReservaAtiva {
			return model.Reserva{}, repository.ErrHorarioReservado
		}
	}
	f.nextID++
	rv := &model.Reserva{ID: f.nextID, UsuarioID: usuarioID, MesaID: mesaID, DataReserva: dataReserva, Status: model.ReservaAtiva, CreatedAt: time.Now().UTC()}
	f.reservas[rv.ID] = rv
	mesa.Status = model.MesaReservada
	return *rv, nil
}

func (f *fakeLedger) Cancelar(_ context.Context, usuarioID, reservaID uint64) (model.Reserva, error) {
	rv, ok := f.reservas[reservaID]
	if !ok || rv.UsuarioID != usuarioID {
		return model.Reserva{}, sql.ErrNoRows
	}
	if rv.Status == model.ReservaCancelada {
		return model.Reserva{}, repository.ErrReservaJaCancelada
	}
	rv.Status = model.ReservaCancelada
	if mesa, ok := f.mesas.mesas[rv.MesaID]; ok {
		mesa.Status = model.MesaDisponivel
	}
	return *rv, nil
}

// ----- fixture -----

type fixture struct {
	e      *echo.Echo
	cfg    config.Config
	users  *fakeUserStore
	mesas  *fakeMesaStore
	ledger *fakeLedger
}

func newFixture() *fixture {
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 60, BcryptCost: bcrypt.MinCost}
	users := newFakeUserStore()
	mesas := newFakeMesaStore()
	ledger := newFakeLedger(mesas)

	e := echo.New()
	router.Register(e, router.Deps{
		JWTSecret: cfg.JWTSecret,
		Auth:      handler.NewAuthHandler(cfg, users),
		Mesas:     handler.NewMesaHandler(mesas),
		Reservas:  handler.NewReservaHandler(ledger),
	})
	return &fixture{e: e, cfg: cfg, users: users, mesas: mesas, ledger: ledger}
}

func (f *fixture) token(t *testing.T, u model.User) string {
	t.Helper()
	tok, err := utils.NewAccessToken(f.cfg.JWTSecret, u, f.cfg.AccessTTLMin)
	require.NoError(t, err)
	return tok.Token
}

// seedUser registers a user directly in the fake store and returns it.
func (f *fixture) seedUser(t *testing.T, nome, email, role string) model.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), nome, email, "senha-secreta", bcrypt.MinCost)
	require.NoError(t, err)
	u.Role = role
	f.users.byEmail[email] = u
	return u
}

func (f *fixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
