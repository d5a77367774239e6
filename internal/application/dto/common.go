package dto

import "github.com/tu-usuario/supermarket-pro/internal/domain"

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// DefaultPage aplica valores por defecto y límites.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 20
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset devuelve el offset SQL equivalente.
func (p PageRequest) Offset() int { return (p.Page - 1) * p.PerPage }

// PageResponse metadatos de página en respuestas de listado.
type PageResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse calcula los metadatos a partir del request y el total.
func NewPageResponse(req PageRequest, totalCount int) PageResponse {
	totalPages := totalCount / req.PerPage
	if totalCount%req.PerPage != 0 {
		totalPages++
	}
	return PageResponse{Page: req.Page, PerPage: req.PerPage, TotalCount: totalCount, TotalPages: totalPages}
}

// ErrorResponse cuerpo de error HTTP. Fields solo se llena para errores de validación.
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []domain.FieldViolation `json:"fields,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
