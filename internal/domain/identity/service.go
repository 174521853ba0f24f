// Package identity provee el usuario actual y las acciones de sesión
// (login, registro, logout, recuperación de contraseña) a los demás módulos.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/platform/validation"
	"pet-care-dashboard/internal/ports/auth"
	"pet-care-dashboard/internal/ports/backend"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Gateway son los endpoints de auth del backend. Login/Register guardan token y
// usuario en la sesión; Logout la limpia aunque la llamada remota falle.
type Gateway interface {
	Login(ctx context.Context, in auth.Credentials) (auth.User, error)
	Register(ctx context.Context, in auth.Registration) (auth.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (auth.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in auth.PasswordReset) error
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerInput struct {
	Name     string `validate:"required,max=255"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type forgotInput struct {
	Email string `validate:"required,email"`
}

type resetInput struct {
	Token    string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type Service struct {
	gw   Gateway
	sess auth.Session
	log  logger.Logger
	now  func() time.Time
}

func NewService(gw Gateway, sess auth.Session, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{gw: gw, sess: sess, log: log, now: time.Now}
}

func (s *Service) Login(ctx context.Context, email, password string) (auth.User, error) {
	email = strings.TrimSpace(email)
	if err := check(loginInput{Email: email, Password: password}); err != nil {
		return auth.User{}, err
	}

	u, err := s.gw.Login(ctx, auth.Credentials{Email: email, Password: password})
	if err != nil {
		if backend.Classify(err) == backend.KindAuth {
			_ = s.sess.Clear(ctx)
			return auth.User{}, ErrInvalidCredentials
		}
		return auth.User{}, err
	}
	s.log.Info("user logged in", map[string]any{"user_id": u.ID})
	return u, nil
}

func (s *Service) Register(ctx context.Context, in auth.Registration) (auth.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := check(registerInput{Name: in.Name, Email: in.Email, Password: in.Password}); err != nil {
		return auth.User{}, err
	}
	if in.PasswordConfirmation == "" {
		in.PasswordConfirmation = in.Password
	}
	return s.gw.Register(ctx, in)
}

// Logout siempre deja la sesión local limpia; el error remoto solo se loguea.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.gw.Logout(ctx); err != nil {
		s.log.Warn("remote logout failed", map[string]any{"err": err})
	}
	return s.sess.Clear(ctx)
}

// Current devuelve el usuario cacheado o lo pide a /me. Sin token, con un JWT
// vencido o ante un 401, limpia la sesión y devuelve AuthError.
func (s *Service) Current(ctx context.Context) (auth.User, error) {
	tok, err := s.sess.Token(ctx)
	if err != nil {
		return auth.User{}, err
	}
	if tok == "" {
		return auth.User{}, &backend.AuthError{Message: "not logged in"}
	}
	if auth.TokenExpired(tok, s.now()) {
		_ = s.sess.Clear(ctx)
		return auth.User{}, &backend.AuthError{Message: "session expired"}
	}

	if u, err := s.sess.User(ctx); err == nil && u != nil {
		return *u, nil
	}

	u, err := s.gw.Me(ctx)
	if err != nil {
		if backend.Classify(err) == backend.KindAuth {
			_ = s.sess.Clear(ctx)
		}
		return auth.User{}, err
	}
	if err := s.sess.SetUser(ctx, &u); err != nil {
		s.log.Warn("cache user failed", map[string]any{"err": err})
	}
	return u, nil
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := check(forgotInput{Email: email}); err != nil {
		return err
	}
	return s.gw.ForgotPassword(ctx, email)
}

func (s *Service) ResetPassword(ctx context.Context, in auth.PasswordReset) error {
	in.Email = strings.TrimSpace(in.Email)
	if err := check(resetInput{Token: in.Token, Email: in.Email, Password: in.Password}); err != nil {
		return err
	}
	if in.PasswordConfirmation == "" {
		in.PasswordConfirmation = in.Password
	}
	return s.gw.ResetPassword(ctx, in)
}

func check(in any) error {
	if err := validation.Struct(in); err != nil {
		return ErrInvalidInput
	}
	return nil
}
