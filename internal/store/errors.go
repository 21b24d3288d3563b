package store

import "errors"

var (
	// ErrNotFound se devuelve cuando la entidad no existe.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate se devuelve al violar una restricción de unicidad
	// (subdominio de tenant, email dentro de un tenant).
	ErrDuplicate = errors.New("store: duplicate")
)
