package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Claves de contadores de uso por tenant.
const (
	StatTotalSales     = "totalSales"
	StatTotalPurchases = "totalPurchases"
)

// UserStats contadores de uso del local (se incrementan como efecto lateral
// de registrar compras y ventas).
type UserStats struct {
	TotalSales     int64
	TotalPurchases int64
}

// User cuenta de un local (tenant). Todas las entidades del sistema están
// asociadas a exactamente un User.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	BusinessName string
	Role         string // admin | user
	IsActive     bool
	Stats        UserStats
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
