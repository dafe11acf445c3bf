package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusvote/internal/voter/models"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/platform/httputil"
	"campusvote/pkg/requestcontext"
)

// Service defines the voter operations the HTTP layer needs.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error)
	Enroll(ctx context.Context, req models.EnrollRequest, userAgent string) (*models.EnrollResult, error)
	SignIn(ctx context.Context, req models.SignInRequest, userAgent string) (*models.SignInResult, error)
	Get(ctx context.Context, voterID id.VoterID) (*models.Voter, error)
	ListVoters(ctx context.Context, actor id.VoterID) ([]models.Voter, error)
}

// Handler serves registration, enrollment and biometric sign-in.
type Handler struct {
	voters Service
	logger *slog.Logger
}

func New(voters Service, logger *slog.Logger) *Handler {
	return &Handler{voters: voters, logger: logger}
}

// Register mounts the public routes. Profile routes need RequireAuth and are
// mounted with RegisterAuthenticated.
func (h *Handler) Register(r chi.Router) {
	r.Post("/voters", h.handleRegister)
	r.Post("/auth/biometric/enroll", h.handleEnroll)
	r.Post("/auth/biometric/signin", h.handleSignIn)
}

func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Get("/voters/me", h.handleMe)
	r.Get("/voters", h.handleList)
}

type listResponse struct {
	Voters []models.Voter `json:"voters"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	voter, err := h.voters.Register(ctx, req)
	if err != nil {
		h.logFailure(ctx, "voter registration failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, voter)
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.EnrollRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.voters.Enroll(ctx, req, r.UserAgent())
	if err != nil {
		h.logFailure(ctx, "biometric enrollment failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.SignInRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.voters.SignIn(ctx, req, r.UserAgent())
	if err != nil {
		h.logFailure(ctx, "biometric sign-in failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	voterID := requestcontext.VoterID(ctx)
	if voterID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	voter, err := h.voters.Get(ctx, voterID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, voter)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.VoterID(ctx)
	if actor.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	voters, err := h.voters.ListVoters(ctx, actor)
	if err != nil {
		h.logFailure(ctx, "failed to list voters", err)
		httputil.WriteError(w, err)
		return
	}
	if voters == nil {
		voters = []models.Voter{}
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Voters: voters})
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	if h.logger == nil {
		return
	}
	level := slog.LevelWarn
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"code", string(dErrors.CodeOf(err)),
		"error", err,
	)
}
