// Package pagination contiene el envelope de paginación de los listados.
package pagination

import (
	"net/url"
	"strconv"
)

// Pagination describe la página devuelta en un listado.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Limit       int `json:"limit"`
}

// Of arma el envelope a partir de página pedida, límite y total de filas.
func Of(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{CurrentPage: page, TotalPages: pages, Limit: limit}
}

// Parse lee page y limit del query string con defaults por recurso. Valores
// no numéricos o fuera de rango caen al default; limit se acota a maxLimit.
func Parse(q url.Values, defaultLimit, maxLimit int) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	limit = defaultLimit
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
