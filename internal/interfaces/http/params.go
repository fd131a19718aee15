package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// dateLayouts formatos aceptados en los filtros de fecha de query string.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDateQuery parsea un parámetro de fecha opcional. Devuelve nil si el
// parámetro no viene, y error si viene con un formato no reconocido.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, name+" debe ser RFC 3339 o YYYY-MM-DD")
}

// dateRange parsea start_date y end_date. Cuando end_date viene como fecha
// sin hora se extiende al final del día para que el rango sea inclusivo.
func dateRange(c *fiber.Ctx) (start, end *time.Time, err error) {
	start, err = parseDateQuery(c, "start_date")
	if err != nil {
		return nil, nil, err
	}
	end, err = parseDateQuery(c, "end_date")
	if err != nil {
		return nil, nil, err
	}
	if end != nil && end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
		e := end.Add(24*time.Hour - time.Millisecond)
		end = &e
	}
	return start, end, nil
}
