package cache

import (
	"context"
	"time"

	"github.com/Camilo196/Vendly/internal/application/ports"
)

var _ ports.ReportCache = (*Noop)(nil)

// Noop cache nulo: nunca acierta y descarta escrituras. Se usa cuando no hay
// Redis configurado; los reportes se calculan siempre en caliente.
type Noop struct{}

// NewNoop construye el cache nulo.
func NewNoop() *Noop { return &Noop{} }

func (Noop) Get(ctx context.Context, key string, v any) (bool, error)          { return false, nil }
func (Noop) Set(ctx context.Context, key string, v any, ttl time.Duration) error { return nil }
func (Noop) Invalidate(ctx context.Context, prefix string) error                 { return nil }
