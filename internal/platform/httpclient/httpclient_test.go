package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSON_DecodesAndReportsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("missing Accept header")
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"Fido"}`))
		default:
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte(" nope "))
		}
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/", 0)
	if err != nil {
		t.Fatalf("NewWithBaseURL: %v", err)
	}

	var out struct {
		Name string `json:"name"`
	}
	if err := c.DoJSON(context.Background(), http.MethodGet, "ok", nil, nil, &out); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if out.Name != "Fido" {
		t.Fatalf("expected Fido, got %q", out.Name)
	}

	err = c.DoJSON(context.Background(), http.MethodGet, "/other", nil, nil, nil)
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusTeapot || he.Body != "nope" {
		t.Fatalf("expected HTTPError 418 body=nope, got %v", err)
	}
}

func TestDo_TransportErrorIsWrapped(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(0)
	_, err := c.Do(context.Background(), http.MethodGet, url+"/x", nil, nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestWithCookieJar_KeepsCookiesPerCopy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "abc", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	base, _ := NewWithBaseURL(ts.URL, 0)
	a, err := base.WithCookieJar()
	if err != nil {
		t.Fatalf("WithCookieJar: %v", err)
	}
	b, _ := base.WithCookieJar()

	if _, err := a.Do(context.Background(), http.MethodGet, "/csrf", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if v, ok := a.Cookie("XSRF-TOKEN"); !ok || v != "abc" {
		t.Fatalf("expected cookie on a, got %q %v", v, ok)
	}
	if _, ok := b.Cookie("XSRF-TOKEN"); ok {
		t.Fatalf("cookie leaked into b")
	}
}
