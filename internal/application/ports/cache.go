package ports

import (
	"context"
	"time"
)

// ReportCache cachea respuestas de reportes agregados. Los reportes recorren
// todas las ventas/servicios del tenant y son los endpoints más costosos.
type ReportCache interface {
	// Get deserializa en v el valor cacheado. Devuelve false si no hay entrada.
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	// Invalidate borra las entradas del tenant (prefijo de clave).
	Invalidate(ctx context.Context, prefix string) error
}
