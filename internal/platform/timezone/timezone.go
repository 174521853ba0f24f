package timezone

import "time"

// DefaultTimezone vacío significa "zona local del proceso".
const DefaultTimezone = ""

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resuelve tz; si es inválida o vacía cae en time.Local.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// ParseDate interpreta YYYY-MM-DD como medianoche en loc.
func ParseDate(loc *time.Location, date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, loc)
}

// SameDayOrAfter indica si t cae hoy (en loc) o en un día posterior.
func SameDayOrAfter(t, now time.Time, loc *time.Location) bool {
	ty, tm, td := t.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	day := time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)
	return !day.Before(today)
}
