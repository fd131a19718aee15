package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNoRegisteredCost   = errors.New("el producto no tiene un costo registrado")
	ErrProductHasStock    = errors.New("el producto tiene stock disponible")
	ErrAlreadyDelivered   = errors.New("el equipo ya fue entregado al cliente")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
)
