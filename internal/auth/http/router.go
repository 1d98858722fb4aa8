package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Totenem/Time-Tracker-App/internal/auth/service"
	commonhttp "github.com/Totenem/Time-Tracker-App/internal/common/http"
	"github.com/Totenem/Time-Tracker-App/internal/common/logger"
)

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type loginResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	Token    string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	auth     *service.AuthService
	validate *validator.Validate
	errors   *commonhttp.ErrorHandler
	timeout  time.Duration
	log      *logger.Logger
}

func NewHandler(auth *service.AuthService, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		auth:     auth,
		validate: validator.New(),
		errors:   commonhttp.NewErrorHandler(log),
		timeout:  timeout,
		log:      log,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/auth/signup", commonhttp.RequireMethod(http.MethodPost)(h.signup))
	mux.HandleFunc("/v1/auth/login", commonhttp.RequireMethod(http.MethodPost)(h.login))
	mux.HandleFunc("/v1/auth/logout", commonhttp.RequireMethod(http.MethodGet)(h.logout))
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("signup failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("signup failed: invalid request body: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "username, email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Signup(ctx, service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, signupResponse{
		Message: "User created successfully",
		Token:   result.Token,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("login failed: invalid request body: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Login(ctx, service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, loginResponse{
		Username: result.Username,
		Message:  "User logged in successfully",
		Token:    result.Token,
	})
}

// Tokens are stateless; logout is a client-side discard.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "User logged out successfully"})
}
