package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pet-care-dashboard/internal/adapters/storage/memory"
	"pet-care-dashboard/internal/ports/auth"
	"pet-care-dashboard/internal/ports/backend"
)

// -------------------------
// Fake gateway
// -------------------------

// fakeGateway imita al gateway real: guarda token/usuario en la sesión al loguear.
type fakeGateway struct {
	sess *StoreSession

	LoginErr  error
	LogoutErr error
	MeFunc    func(ctx context.Context) (auth.User, error)

	meCalls   int
	forgotFor string
}

func (f *fakeGateway) Login(ctx context.Context, in auth.Credentials) (auth.User, error) {
	if f.LoginErr != nil {
		return auth.User{}, f.LoginErr
	}
	u := auth.User{ID: 3, Name: "Ana", Email: in.Email}
	_ = f.sess.SetToken(ctx, "1|opaque")
	_ = f.sess.SetUser(ctx, &u)
	return u, nil
}

func (f *fakeGateway) Register(ctx context.Context, in auth.Registration) (auth.User, error) {
	u := auth.User{ID: 4, Name: in.Name, Email: in.Email}
	_ = f.sess.SetToken(ctx, "2|opaque")
	_ = f.sess.SetUser(ctx, &u)
	return u, nil
}

func (f *fakeGateway) Logout(ctx context.Context) error {
	return f.LogoutErr
}

func (f *fakeGateway) Me(ctx context.Context) (auth.User, error) {
	f.meCalls++
	return f.MeFunc(ctx)
}

func (f *fakeGateway) ForgotPassword(ctx context.Context, email string) error {
	f.forgotFor = email
	return nil
}

func (f *fakeGateway) ResetPassword(ctx context.Context, in auth.PasswordReset) error {
	return nil
}

func newService() (*Service, *fakeGateway, *StoreSession) {
	sess := NewStoreSession(memory.NewSessionStore(0), "s1")
	gw := &fakeGateway{sess: sess}
	return NewService(gw, sess, nil), gw, sess
}

// -------------------------
// Tests
// -------------------------

func TestLogin_StoresSessionAndRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, gw, sess := newService()

	if _, err := svc.Login(ctx, "not-an-email", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	gw.LoginErr = &backend.AuthError{}
	if _, err := svc.Login(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if tok, _ := sess.Token(ctx); tok != "" {
		t.Fatalf("no token must be stored on failed login")
	}

	gw.LoginErr = nil
	u, err := svc.Login(ctx, " ana@example.com ", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != 3 {
		t.Fatalf("unexpected user %#v", u)
	}

	cur, err := svc.Current(ctx)
	if err != nil || cur.Email != "ana@example.com" || gw.meCalls != 0 {
		t.Fatalf("expected cached user without /me, got %#v err=%v calls=%d", cur, err, gw.meCalls)
	}
}

func TestLogout_ClearsEvenWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	svc, gw, sess := newService()
	_, _ = svc.Login(ctx, "ana@example.com", "secret")

	gw.LogoutErr = &backend.NetworkError{Err: errors.New("offline")}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if tok, _ := sess.Token(ctx); tok != "" {
		t.Fatalf("token must be cleared")
	}
	if u, _ := sess.User(ctx); u != nil {
		t.Fatalf("user must be cleared")
	}
}

func TestCurrent_FetchesMeAndClearsOn401(t *testing.T) {
	ctx := context.Background()
	svc, gw, sess := newService()

	if _, err := svc.Current(ctx); backend.Classify(err) != backend.KindAuth {
		t.Fatalf("expected AuthError without token, got %v", err)
	}

	_ = sess.SetToken(ctx, "1|opaque")
	gw.MeFunc = func(ctx context.Context) (auth.User, error) { return auth.User{ID: 9, Name: "Bo"}, nil }
	u, err := svc.Current(ctx)
	if err != nil || u.ID != 9 {
		t.Fatalf("Current: %#v %v", u, err)
	}
	if cached, _ := sess.User(ctx); cached == nil || cached.ID != 9 {
		t.Fatalf("expected user cached after /me")
	}

	_ = sess.SetUser(ctx, nil)
	gw.MeFunc = func(ctx context.Context) (auth.User, error) { return auth.User{}, &backend.AuthError{} }
	if _, err := svc.Current(ctx); backend.Classify(err) != backend.KindAuth {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if tok, _ := sess.Token(ctx); tok != "" {
		t.Fatalf("401 must clear the token")
	}
}

func TestCurrent_ExpiredJWTClearsWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	svc, gw, sess := newService()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "3",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_ = sess.SetToken(ctx, signed)

	if _, err := svc.Current(ctx); backend.Classify(err) != backend.KindAuth {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if gw.meCalls != 0 {
		t.Fatalf("expired token must not reach the backend")
	}
}

func TestForgotAndResetPassword_Validate(t *testing.T) {
	ctx := context.Background()
	svc, gw, _ := newService()

	if err := svc.ForgotPassword(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.ForgotPassword(ctx, "ana@example.com"); err != nil || gw.forgotFor != "ana@example.com" {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if err := svc.ResetPassword(ctx, auth.PasswordReset{Email: "ana@example.com", Password: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing token must be rejected, got %v", err)
	}
}

func TestEmailDisplayNameFormIsRejected(t *testing.T) {
	ctx := context.Background()
	svc, gw, _ := newService()
	const addr = "Fido Owner <ana@example.com>"

	if err := svc.ForgotPassword(ctx, addr); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ForgotPassword: expected ErrInvalidInput, got %v", err)
	}
	if gw.forgotFor != "" {
		t.Fatalf("gateway must not be called, got email %q", gw.forgotFor)
	}
	if _, err := svc.Login(ctx, addr, "secret"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Login: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Register(ctx, auth.Registration{Name: "Ana", Email: addr, Password: "secret"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Register: expected ErrInvalidInput, got %v", err)
	}
	if err := svc.ResetPassword(ctx, auth.PasswordReset{Token: "t", Email: addr, Password: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ResetPassword: expected ErrInvalidInput, got %v", err)
	}
}
