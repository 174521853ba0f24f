// Package nominatim resuelve direcciones con la API de búsqueda de OpenStreetMap Nominatim.
package nominatim

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"pet-care-dashboard/internal/domain/clinics"
	"pet-care-dashboard/internal/platform/httpclient"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "pet-care-dashboard/1.0"
)

var (
	ErrNotConfigured = errors.New("nominatim client not configured")
	ErrNoResults     = errors.New("nominatim: no results")
)

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// RequestsPerSecond <= 0 usa 1 (política de uso de Nominatim).
	RequestsPerSecond float64
}

type Client struct {
	http      *httpclient.Client
	userAgent string
	limiter   *rate.Limiter
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = DefaultUserAgent
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		http:      hc,
		userAgent: ua,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode espera turno en el limiter (respetando ctx) y devuelve el primer resultado.
func (c *Client) Geocode(ctx context.Context, address string) (clinics.Coordinates, error) {
	if c == nil || c.http == nil {
		return clinics.Coordinates{}, ErrNotConfigured
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return clinics.Coordinates{}, ErrNoResults
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return clinics.Coordinates{}, err
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	var out []searchResult
	headers := map[string]string{"User-Agent": c.userAgent}
	if err := c.http.DoJSON(ctx, http.MethodGet, "/search?"+q.Encode(), headers, nil, &out); err != nil {
		return clinics.Coordinates{}, fmt.Errorf("nominatim search: %w", err)
	}
	if len(out) == 0 {
		return clinics.Coordinates{}, ErrNoResults
	}

	lat, err := strconv.ParseFloat(out[0].Lat, 64)
	if err != nil {
		return clinics.Coordinates{}, fmt.Errorf("nominatim lat: %w", err)
	}
	lon, err := strconv.ParseFloat(out[0].Lon, 64)
	if err != nil {
		return clinics.Coordinates{}, fmt.Errorf("nominatim lon: %w", err)
	}
	return clinics.Coordinates{Lat: lat, Lon: lon}, nil
}
