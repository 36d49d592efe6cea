package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/microblog/internal/auth/service"
	"github.com/AlibekovAA/microblog/internal/auth/service/mapper"
	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
	commonhttp "github.com/AlibekovAA/microblog/internal/common/http"
	"github.com/AlibekovAA/microblog/internal/common/jwtverify"
	"github.com/AlibekovAA/microblog/internal/common/logger"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	auth         *service.AuthService
	validator    *commonhttp.Validator
	errorHandler *commonhttp.ErrorHandler
	log          *logger.Logger
}

func NewHandler(auth *service.AuthService, log *logger.Logger) *Handler {
	return &Handler{
		auth:         auth,
		validator:    commonhttp.NewValidator(),
		errorHandler: commonhttp.NewErrorHandler(log),
		log:          log,
	}
}

// RegisterRoutes mounts signup, login and the gated /me route.
func (h *Handler) RegisterRoutes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.With(gate).Get("/me", h.me)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"client_ip": commonhttp.GetClientIP(r), "action": "signup_invalid_json"}).Warnf("signup failed: invalid json: %v", err)
		h.errorHandler.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	ctx := r.Context()

	token, err := h.auth.Signup(ctx, service.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"client_ip": commonhttp.GetClientIP(r), "action": "login_invalid_json"}).Warnf("login failed: invalid json: %v", err)
		h.errorHandler.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	ctx := r.Context()

	token, err := h.auth.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errorHandler.HandleError(w, r, commonerrors.ErrUnauthorized)
		return
	}

	ctx := r.Context()

	user, err := h.auth.Me(ctx, claims.UserID)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.UserToDTO(user))
}
