// Package handler implements the HTTP endpoints of the reservation
// API. Every response, success or failure, uses the same JSON envelope
// {statusCode, message, data?} so clients can treat the body uniformly.
package handler

import "github.com/labstack/echo/v4"

// Response is the envelope written by every endpoint.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Response{StatusCode: status, Message: message, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return respond(c, status, message, nil)
}
