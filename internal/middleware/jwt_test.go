package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrordg/api-restaurantes/internal/middleware"
	"github.com/leandrordg/api-restaurantes/internal/model"
	"github.com/leandrordg/api-restaurantes/internal/utils"
)

const secret = "test-secret"

// protectedServer mounts a probe handler behind JWTAuth (and optionally
// RequireAdmin) that echoes the identity injected into the context.
func protectedServer(adminOnly bool) *echo.Echo {
	e := echo.New()
	mws := []echo.MiddlewareFunc{middleware.JWTAuth(secret)}
	if adminOnly {
		mws = append(mws, middleware.RequireAdmin())
	}
	e.GET("/protegido", func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, user)
	}, mws...)
	return e
}

func doGet(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func issue(t *testing.T, u model.User, ttlMin int) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, u, ttlMin)
	require.NoError(t, err)
	return tok.Token
}

func TestJWTAuthSemToken(t *testing.T) {
	e := protectedServer(false)

	rec := doGet(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token não fornecido")

	// scheme other than Bearer is also rejected
	rec = doGet(e, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthTokenInvalido(t *testing.T) {
	e := protectedServer(false)

	rec := doGet(e, "Bearer nao-e-um-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token inválido ou expirado.")

	// token signed with a different secret
	other, err := utils.NewAccessToken("outro-secret", model.User{ID: 1, Role: model.RoleCliente}, 60)
	require.NoError(t, err)
	rec = doGet(e, "Bearer "+other.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthTokenExpirado(t *testing.T) {
	e := protectedServer(false)

	claims := jwt.MapClaims{
		"sub":  uint64(1),
		"role": model.RoleCliente,
		"exp":  time.Now().UTC().Add(-time.Minute).Unix(),
		"iat":  time.Now().UTC().Add(-2 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	rec := doGet(e, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token inválido ou expirado.")
}

func TestJWTAuthInjetaIdentidade(t *testing.T) {
	e := protectedServer(false)
	u := model.User{ID: 7, Nome: "Leandro", Email: "leandro@example.com", Role: model.RoleCliente}

	rec := doGet(e, "Bearer "+issue(t, u, 60))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ID":7`)
	assert.Contains(t, rec.Body.String(), "leandro@example.com")
}

func TestRequireAdmin(t *testing.T) {
	e := protectedServer(true)

	rec := doGet(e, "Bearer "+issue(t, model.User{ID: 1, Role: model.RoleCliente}, 60))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acesso restrito a administradores.")

	rec = doGet(e, "Bearer "+issue(t, model.User{ID: 2, Role: model.RoleAdministrador}, 60))
	assert.Equal(t, http.StatusOK, rec.Code)
}
