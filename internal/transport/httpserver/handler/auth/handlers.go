package auth

import (
	"errors"
	"net/http"

	authdomain "chapter-points-go/internal/domain/auth"
	memberdomain "chapter-points-go/internal/domain/member"
	"chapter-points-go/internal/transport/httpserver/middleware"
	"chapter-points-go/pkg/logger"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Handlers struct {
	Auth    *authdomain.Service
	Members *memberdomain.Service
	log     logger.Logger
}

func New(auth *authdomain.Service, members *memberdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Auth: auth, Members: members, log: log}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid registration fields")
		return
	}

	created, err := h.Auth.Register(r.Context(), authdomain.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, authdomain.ErrNameRequired),
			errors.Is(err, authdomain.ErrEmailRequired),
			errors.Is(err, authdomain.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.InternalError("auth: register failed", err)
			writeError(w, http.StatusInternalServerError, "error creating account")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Account created. Pending admin approval.",
		"user":    created,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, m, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, authdomain.ErrNotApproved):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			h.log.InternalError("auth: login failed", err)
			writeError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  m,
	})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	m, err := h.Members.GetMember(r.Context(), claims.MemberID)
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusUnauthorized, "account no longer exists")
			return
		}
		h.log.InternalError("auth: me lookup failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword always answers 202 so the endpoint cannot be used to probe
// which emails have accounts.
func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if _, err := h.Auth.ForgotPassword(r.Context(), req.Email); err != nil {
		h.log.InternalError("auth: forgot password failed", err)
		writeError(w, http.StatusInternalServerError, "failed to start password reset")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "If that email is registered, a reset link is on its way.",
	})
}

// The reset form also posts the account email; only the token decides which
// account the reset applies to.
type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "token and new password are required")
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, authdomain.ErrResetTokenInvalid):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, authdomain.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.InternalError("auth: reset password failed", err)
			writeError(w, http.StatusInternalServerError, "failed to reset password")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated."})
}
