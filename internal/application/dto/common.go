// Package dto define los contratos de entrada/salida de la API (capa de aplicación).
package dto

// Límites de paginación.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest parámetros de paginación (query params page y pageSize).
type PageRequest struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"pageSize" query:"pageSize"`
}

// Normalize aplica defaults y topes: page >= 1, 1 <= pageSize <= 100.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset devuelve el offset SQL correspondiente (asume Normalize ya llamado).
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageMeta metadatos de paginación incluidos en las respuestas de listado.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta calcula los metadatos para un total dado.
func NewPageMeta(p PageRequest, total int) PageMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.PageSize - 1) / p.PageSize
	}
	return PageMeta{Page: p.Page, PageSize: p.PageSize, Total: total, TotalPages: totalPages}
}

// Paged respuesta de listado: elementos más metadatos de paginación.
type Paged[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}
