// Package repository implements persistence for users, mesas and
// reservas over database/sql. Sentinel errors defined here let
// handlers distinguish failure scenarios without inspecting driver
// error strings themselves; handlers translate them into the HTTP
// statuses and messages of the public API.
package repository

import "errors"

// ErrEmailExists is returned when registering an email that is
// already present in the usuarios table.
var ErrEmailExists = errors.New("email already exists")

// ErrMesaNomeExists is returned when creating or renaming a mesa to a
// name another mesa already owns.
var ErrMesaNomeExists = errors.New("mesa name already exists")

// ErrHorarioReservado is returned when an active reservation already
// exists for the requested (mesa, data_reserva) pair.
var ErrHorarioReservado = errors.New("mesa already reserved for that time")
