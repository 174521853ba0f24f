// Package vetapi es el gateway tipado hacia el backend veterinario (API REST estilo Laravel/Sanctum).
// Adjunta Bearer y X-XSRF-TOKEN, normaliza errores a ports/backend y tolera los sobres
// {data: ...} habituales del backend.
package vetapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-care-dashboard/internal/platform/httpclient"
	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/ports/auth"
	"pet-care-dashboard/internal/ports/backend"
)

const (
	xsrfCookie = "XSRF-TOKEN"
	xsrfHeader = "X-XSRF-TOKEN"

	defaultCSRFPath = "/sanctum/csrf-cookie"
)

// DefaultSlotEndpoints se prueban en orden; {vet} se reemplaza por el id del veterinario.
var DefaultSlotEndpoints = []string{
	"/veterinarians/{vet}/available-slots",
	"/vets/{vet}/available-slots",
	"/appointments/available-slots?veterinarian_id={vet}",
}

var ErrNotConfigured = errors.New("vetapi client not configured")

type Config struct {
	BaseURL string

	// CSRFCookieURL: si está vacío se usa <origen de BaseURL>/sanctum/csrf-cookie.
	CSRFCookieURL string

	SlotEndpoints []string

	// Timeout <= 0 deja el default del transport.
	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper

	Log logger.Logger
}

// Client sin sesión sirve de plantilla; WithSession devuelve uno ligado a una sesión
// con su propio cookie jar.
type Client struct {
	http    *httpclient.Client
	csrfURL string
	slots   []string
	log     logger.Logger
	sess    auth.Session
	now     func() time.Time
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if cfg.Transport != nil {
		hc.HTTP.Transport = cfg.Transport
	}

	csrf := strings.TrimSpace(cfg.CSRFCookieURL)
	if csrf == "" {
		u, err := url.Parse(hc.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		csrf = u.Scheme + "://" + u.Host + defaultCSRFPath
	}

	slots := make([]string, 0, len(cfg.SlotEndpoints))
	for _, s := range cfg.SlotEndpoints {
		if s = strings.TrimSpace(s); s != "" {
			slots = append(slots, s)
		}
	}
	if len(slots) == 0 {
		slots = append(slots, DefaultSlotEndpoints...)
	}

	log := cfg.Log
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		http:    hc,
		csrfURL: csrf,
		slots:   slots,
		log:     log.With(map[string]any{"component": "vetapi"}),
		now:     time.Now,
	}, nil
}

// WithSession liga el cliente a una sesión. Cada sesión tiene su cookie jar (XSRF-TOKEN).
func (c *Client) WithSession(sess auth.Session) (*Client, error) {
	hc, err := c.http.WithCookieJar()
	if err != nil {
		return nil, err
	}
	cp := *c
	cp.http = hc
	cp.sess = sess
	return &cp, nil
}

// call es el camino común: headers, CSRF, ejecución, mapeo de errores y decode.
// out puede ser nil. requireAuth exige token antes de tocar la red.
func (c *Client) call(ctx context.Context, method, path string, in, out any, requireAuth bool) error {
	raw, err := c.send(ctx, method, path, in, requireAuth)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return decodeOne(raw, out)
}

// send devuelve el body crudo de una respuesta 2xx.
func (c *Client) send(ctx context.Context, method, path string, in any, requireAuth bool) ([]byte, error) {
	headers, err := c.headers(ctx, method, requireAuth)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, method, path, headers, in)
	if err != nil {
		return nil, err
	}

	// 419: token CSRF vencido; se renueva la cookie y se reintenta una vez.
	if resp.StatusCode == 419 && method != http.MethodGet {
		if err := c.refreshCSRF(ctx); err == nil {
			if tok, ok := c.xsrfToken(); ok {
				headers[xsrfHeader] = tok
			}
			resp, err = c.do(ctx, method, path, headers, in)
			if err != nil {
				return nil, err
			}
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.Body, nil
	}

	apiErr := errorFromResponse(resp.StatusCode, resp.Body)
	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession(ctx)
	}
	return nil, apiErr
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, in any) (httpclient.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(ctx, method, path, headers, in)
	fields := map[string]any{
		"method":      method,
		"path":        path,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["err"] = err
		c.log.Debug("backend call failed", fields)
		return httpclient.Response{}, &backend.NetworkError{Err: err}
	}
	fields["status"] = resp.StatusCode
	c.log.Debug("backend call", fields)
	return resp, nil
}

func (c *Client) headers(ctx context.Context, method string, requireAuth bool) (map[string]string, error) {
	h := map[string]string{
		"X-Requested-With": "XMLHttpRequest",
	}

	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	if tok != "" {
		if auth.TokenExpired(tok, c.now()) {
			c.clearSession(ctx)
			return nil, &backend.AuthError{Message: "session expired"}
		}
		h["Authorization"] = "Bearer " + tok
	} else if requireAuth {
		return nil, &backend.AuthError{Message: "not logged in"}
	}

	if method != http.MethodGet {
		xsrf, err := c.ensureCSRF(ctx)
		if err != nil {
			return nil, err
		}
		if xsrf != "" {
			h[xsrfHeader] = xsrf
		}
	}
	return h, nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.sess == nil {
		return "", nil
	}
	tok, err := c.sess.Token(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok), nil
}

func (c *Client) clearSession(ctx context.Context) {
	if c.sess == nil {
		return
	}
	if err := c.sess.Clear(ctx); err != nil {
		c.log.Warn("clear session failed", map[string]any{"err": err})
	}
}

// ensureCSRF devuelve el valor de XSRF-TOKEN, pidiéndolo al backend si todavía no está en el jar.
func (c *Client) ensureCSRF(ctx context.Context) (string, error) {
	if tok, ok := c.xsrfToken(); ok {
		return tok, nil
	}
	if err := c.refreshCSRF(ctx); err != nil {
		return "", err
	}
	tok, _ := c.xsrfToken()
	return tok, nil
}

func (c *Client) refreshCSRF(ctx context.Context) error {
	if c.http.HTTP.Jar == nil {
		// cliente sin sesión: no hay dónde guardar la cookie
		return nil
	}
	resp, err := c.do(ctx, http.MethodGet, c.csrfURL, nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp.StatusCode, resp.Body)
	}
	return nil
}

// xsrfToken lee la cookie; Laravel la manda URL-encoded.
func (c *Client) xsrfToken() (string, bool) {
	v, ok := c.http.Cookie(xsrfCookie)
	if !ok || v == "" {
		return "", false
	}
	if dec, err := url.QueryUnescape(v); err == nil {
		v = dec
	}
	return v, true
}
