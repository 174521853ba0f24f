package vetapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-care-dashboard/internal/ports/auth"
	"pet-care-dashboard/internal/ports/backend"
)

// authResponse cubre {token, user} y variantes (access_token, data.user).
type authResponse struct {
	Token       string     `json:"token"`
	AccessToken string     `json:"access_token"`
	User        *auth.User `json:"user"`
}

func (r authResponse) token() string {
	if t := strings.TrimSpace(r.Token); t != "" {
		return t
	}
	return strings.TrimSpace(r.AccessToken)
}

// Login guarda token y usuario en la sesión. Ante cualquier error no guarda nada.
func (c *Client) Login(ctx context.Context, in auth.Credentials) (auth.User, error) {
	return c.authenticate(ctx, "/login", in)
}

func (c *Client) Register(ctx context.Context, in auth.Registration) (auth.User, error) {
	return c.authenticate(ctx, "/register", in)
}

func (c *Client) authenticate(ctx context.Context, path string, in any) (auth.User, error) {
	if c.sess == nil {
		return auth.User{}, errors.New("vetapi: login requires a session")
	}
	// un token viejo no debe viajar en el login
	c.clearSession(ctx)

	var out authResponse
	if err := c.call(ctx, http.MethodPost, path, in, &out, false); err != nil {
		return auth.User{}, err
	}
	tok := out.token()
	if tok == "" {
		return auth.User{}, &backend.ServerError{StatusCode: http.StatusOK, Message: "login response without token"}
	}
	if err := c.sess.SetToken(ctx, tok); err != nil {
		return auth.User{}, err
	}

	var u auth.User
	if out.User != nil {
		u = *out.User
	} else {
		// algunos backends no devuelven el usuario en el login
		me, err := c.Me(ctx)
		if err != nil {
			c.clearSession(ctx)
			return auth.User{}, err
		}
		u = me
	}
	if err := c.sess.SetUser(ctx, &u); err != nil {
		return auth.User{}, err
	}
	return u, nil
}

// Logout limpia la sesión aunque la llamada remota falle; devuelve el error remoto.
func (c *Client) Logout(ctx context.Context) error {
	defer c.clearSession(ctx)

	tok, err := c.token(ctx)
	if err != nil || tok == "" {
		return err
	}
	return c.call(ctx, http.MethodPost, "/logout", nil, nil, true)
}

// Me acepta el usuario directo, {data: user} o {user: user}.
func (c *Client) Me(ctx context.Context) (auth.User, error) {
	raw, err := c.send(ctx, http.MethodGet, "/me", nil, true)
	if err != nil {
		return auth.User{}, err
	}

	var wrapped struct {
		User *auth.User `json:"user"`
	}
	if json.Unmarshal(raw, &wrapped) == nil && wrapped.User != nil {
		return *wrapped.User, nil
	}

	var u auth.User
	if err := decodeOne(raw, &u); err != nil {
		return auth.User{}, err
	}
	return u, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.call(ctx, http.MethodPost, "/forgot-password", map[string]string{"email": email}, nil, false)
}

func (c *Client) ResetPassword(ctx context.Context, in auth.PasswordReset) error {
	return c.call(ctx, http.MethodPost, "/reset-password", in, nil, false)
}
