package handler

import (
	"context"
	"database/sql"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leandrordg/api-restaurantes/internal/config"
	"github.com/leandrordg/api-restaurantes/internal/model"
	"github.com/leandrordg/api-restaurantes/internal/repository"
	"github.com/leandrordg/api-restaurantes/internal/utils"
)

// UserStore is the slice of the user repository the auth endpoints
// need. Declared here so tests can swap in a fake.
type UserStore interface {
	Create(ctx context.Context, nome, email, senha string, cost int) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthHandler bundles dependencies for the /usuarios endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registrarReq struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginReq struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type tokenData struct {
	Token string `json:"token"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (r *registrarReq) validate() string {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Nome == "" {
		return "Nome é obrigatório."
	}
	if !emailRe.MatchString(r.Email) {
		return "Email inválido."
	}
	if len(r.Senha) < 8 {
		return "Senha deve ter no mínimo 8 caracteres."
	}
	return ""
}

func (r *loginReq) validate() string {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !emailRe.MatchString(r.Email) {
		return "Email inválido."
	}
	if r.Senha == "" {
		return "Senha é obrigatória."
	}
	return ""
}

// Registrar handles POST /usuarios/registrar. A duplicate email fails
// with 400; on success the created user (without the password hash) is
// returned with 201.
func (h *AuthHandler) Registrar(c echo.Context) error {
	var req registrarReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Nome, req.Email, req.Senha, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return fail(c, http.StatusBadRequest, "Email já cadastrado.")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao criar usuário.")
	}

	return respond(c, http.StatusCreated, "Usuário criado com sucesso.", u)
}

// Login handles POST /usuarios/login. An unknown email and a wrong
// password both fail with 401 but keep the source's distinct messages.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Corpo da requisição inválido.")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusUnauthorized, "Usuário não encontrado.")
		}
		return fail(c, http.StatusInternalServerError, "Erro ao consultar usuário.")
	}
	if !utils.VerifyPassword(u.Senha, req.Senha) {
		return fail(c, http.StatusUnauthorized, "Senha incorreta.")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Erro ao emitir token.")
	}

	return respond(c, http.StatusOK, "Login realizado com sucesso.", tokenData{Token: access.Token})
}
