package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y acota Limit a 100.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total,omitempty"`
}

// CountResponse respuesta de conteos.
type CountResponse struct {
	Total int64 `json:"total"`
}

// ChangeStateRequest cuerpo común de los endpoints de cambio de estado.
type ChangeStateRequest struct {
	State string `json:"state"`
}

// ErrorResponse cuerpo de error HTTP.
// ResourceID identifica lo que sí quedó persistido cuando la operación falló a medias.
type ErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	ResourceID string `json:"resource_id,omitempty"`
}
