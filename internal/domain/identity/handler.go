package identity

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-dashboard/internal/platform/web"
	"pet-care-dashboard/internal/ports/auth"
)

type Resolver interface {
	Identity(r *http.Request) (*Service, error)
}

func RegisterRoutes(r chi.Router, res Resolver) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(res))
		ar.Post("/register", registerHandler(res))
		ar.Post("/logout", logoutHandler(res))
		ar.Get("/me", meHandler(res))
		ar.Post("/forgot-password", forgotHandler(res))
		ar.Post("/reset-password", resetHandler(res))
	})
}

type forgotRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// loginHandler godoc
// @Summary  Inicia sesión contra el backend
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body auth.Credentials true "Credentials"
// @Success  200 {object} auth.User
// @Failure  400 {object} web.ErrorResponse
// @Failure  401 {object} web.ErrorResponse
// @Router   /auth/login [post]
func loginHandler(res Resolver) http.HandlerFunc {
	return withService(res, func(w http.ResponseWriter, r *http.Request, svc *Service) {
		var req auth.Credentials
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeErr(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, u)
	})
}

// registerHandler godoc
// @Summary  Crea una cuenta y deja la sesión iniciada
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body auth.Registration true "Registration"
// @Success  201 {object} auth.User
// @Failure  422 {object} web.ErrorResponse
// @Router   /auth/register [post]
func registerHandler(res Resolver) http.HandlerFunc {
	return withService(res, func(w http.ResponseWriter, r *http.Request, svc *Service) {
		var req auth.Registration
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := svc.Register(r.Context(), req)
		if err != nil {
			writeErr(w, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, u)
	})
}

// logoutHandler godoc
// @Summary  Cierra la sesión (local siempre, remota si se puede)
// @Tags     auth
// @Success  204
// @Router   /auth/logout [post]
func logoutHandler(res Resolver) http.HandlerFunc {
	return withService(res, func(w http.ResponseWriter, r *http.Request, svc *Service) {
		if err := svc.Logout(r.Context()); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// meHandler godoc
// @Summary  Usuario de la sesión actual
// @Tags     auth
// @Produce  json
// @Success  200 {object} auth.User
// @Failure  401 {object} web.ErrorResponse
// @Router   /auth/me [get]
func meHandler(res Resolver) http.HandlerFunc {
	return withService(res, func(w http.ResponseWriter, r *http.Request, svc *Service) {
		u, err := svc.Current(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, u)
	})
}

// forgotHandler godoc
// @Summary  Pide el mail de recuperación de contraseña
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body forgotRequest true "Email"
// @Success  202 {object} messageResponse
// @Router   /auth/forgot-password [post]
func forgotHandler(res Resolver) http.HandlerFunc {
	return withService(res, func(w http.ResponseWriter, r *http.Request, svc *Service) {
		var req forgotRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			writeErr(w, err)
			return
		}
		web.WriteJSON(w, http.StatusAccepted, messageResponse{Message: "If the address exists, a reset link was sent."})
	})
}

// resetHandler godoc
// @Summary  Cambia la contraseña con el token del mail
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body auth.PasswordReset true "Reset"
// @Success  200 {object} messageResponse
// @Failure  422 {object} web.ErrorResponse
// @Router   /auth/reset-password [post]
func resetHandler(res Resolver) http.HandlerFunc {
	return withService(res, func(w http.ResponseWriter, r *http.Request, svc *Service) {
		var req auth.PasswordReset
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := svc.ResetPassword(r.Context(), req); err != nil {
			writeErr(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, messageResponse{Message: "Password updated."})
	})
}

func withService(res Resolver, next func(http.ResponseWriter, *http.Request, *Service)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := res.Identity(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		next(w, r, svc)
	}
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		web.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		web.Error(w, http.StatusUnauthorized, err.Error())
	default:
		web.WriteError(w, err)
	}
}
