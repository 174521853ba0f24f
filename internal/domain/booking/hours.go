package booking

import (
	"fmt"
	"strings"
	"time"
)

// Window es una franja horaria diaria en minutos desde medianoche, ambos extremos incluidos.
type Window struct {
	From int
	To   int
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.From/60, w.From%60, w.To/60, w.To%60)
}

// BusinessWindows son las franjas en las que puede empezar un turno.
// 12:00 y 16:00 se aceptan como inicio aunque el turno de 30 minutos exceda la franja.
var BusinessWindows = []Window{
	{From: 9 * 60, To: 12 * 60},
	{From: 13 * 60, To: 16 * 60},
}

// WithinBusinessHours evalúa la hora de pared de start en loc.
func WithinBusinessHours(start time.Time, loc *time.Location) bool {
	local := start.In(loc)
	m := local.Hour()*60 + local.Minute()
	for _, w := range BusinessWindows {
		if m >= w.From && m <= w.To {
			return true
		}
	}
	return false
}

func OutsideHoursMessage(start time.Time, loc *time.Location) string {
	ws := make([]string, 0, len(BusinessWindows))
	for _, w := range BusinessWindows {
		ws = append(ws, w.String())
	}
	return fmt.Sprintf(
		"The selected time %s is outside business hours. Appointments must start between %s.",
		start.In(loc).Format("15:04"),
		strings.Join(ws, " or "),
	)
}

var slotLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"15:04:05",
	"15:04",
}

// SlotTimeOfDay extrae hora y minuto de un slot devuelto por el backend.
// Instantes con zona se convierten a loc; valores sin zona se toman como hora local.
func SlotTimeOfDay(raw string, loc *time.Location) (hour, minute int, err error) {
	raw = strings.TrimSpace(raw)
	if t, perr := time.Parse(time.RFC3339Nano, raw); perr == nil {
		t = t.In(loc)
		return t.Hour(), t.Minute(), nil
	}
	for _, layout := range slotLayouts {
		if t, perr := time.ParseInLocation(layout, raw, loc); perr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, fmt.Errorf("unrecognized slot %q", raw)
}
