package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// DateRangeQuery filtros de fecha comunes en listados (RFC 3339).
type DateRangeQuery struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}
