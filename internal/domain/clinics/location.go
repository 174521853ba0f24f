package clinics

import (
	"context"
	"strings"

	"pet-care-dashboard/internal/platform/logger"
)

const LocationUnavailable = "Location unavailable"

type Coordinates struct {
	Lat float64
	Lon float64
}

// Geocoder resuelve una dirección libre a coordenadas.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}

type Location struct {
	Available bool    `json:"available"`
	Lat       float64 `json:"lat,omitempty"`
	Lon       float64 `json:"lon,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// Locator nunca devuelve error: cualquier falla se degrada a "Location unavailable".
type Locator struct {
	geo Geocoder
	log logger.Logger
}

func NewLocator(geo Geocoder, log logger.Logger) *Locator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Locator{geo: geo, log: log}
}

func (l *Locator) Locate(ctx context.Context, c Clinic) Location {
	addr := strings.TrimSpace(c.FullAddress())
	if l == nil || l.geo == nil || addr == "" {
		return Location{Message: LocationUnavailable}
	}

	coords, err := l.geo.Geocode(ctx, addr)
	if err != nil {
		l.log.Warn("geocode failed", map[string]any{"clinic_id": c.ID, "err": err})
		return Location{Message: LocationUnavailable}
	}
	return Location{Available: true, Lat: coords.Lat, Lon: coords.Lon}
}
