package dto

// RegisterRequest entrada para registrar un tenant (dueño del negocio).
type RegisterRequest struct {
	Name         string `json:"name" validate:"required"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario sin campos sensibles.
type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name,omitempty"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// AuthResponse usuario autenticado + token JWT.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
