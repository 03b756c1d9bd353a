// Package router wires handlers to their routes and applies the
// middleware chain each group requires.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/leandrordg/api-restaurantes/internal/handler"
	"github.com/leandrordg/api-restaurantes/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	JWTSecret string
	Auth      *handler.AuthHandler
	Mesas     *handler.MesaHandler
	Reservas  *handler.ReservaHandler
	// CacheMiddleware wraps the public mesa listing; pass nil to skip.
	CacheMiddleware echo.MiddlewareFunc
}

// Register mounts every route of the API on e.
//
//	POST   /usuarios/registrar         public
//	POST   /usuarios/login             public
//	GET    /mesas                      public (cached)
//	POST   /mesas                      admin
//	PATCH  /mesas/:id                  admin
//	DELETE /mesas/:id                  admin
//	GET    /reservas                   authenticated
//	POST   /reservas                   authenticated
//	PATCH  /reservas/:id/cancelar      authenticated
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	usuarios := e.Group("/usuarios")
	usuarios.POST("/registrar", d.Auth.Registrar)
	usuarios.POST("/login", d.Auth.Login)

	mesas := e.Group("/mesas")
	if d.CacheMiddleware != nil {
		mesas.GET("", d.Mesas.Listar, d.CacheMiddleware)
	} else {
		mesas.GET("", d.Mesas.Listar)
	}
	admin := mesas.Group("", middleware.JWTAuth(d.JWTSecret), middleware.RequireAdmin())
	admin.POST("", d.Mesas.Criar)
	admin.PATCH("/:id", d.Mesas.Atualizar)
	admin.DELETE("/:id", d.Mesas.Deletar)

	reservas := e.Group("/reservas", middleware.JWTAuth(d.JWTSecret))
	reservas.GET("", d.Reservas.Listar)
	reservas.POST("", d.Reservas.Criar)
	reservas.PATCH("/:id/cancelar", d.Reservas.Cancelar)
}
