package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusvote/internal/election/models"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/platform/httputil"
	"campusvote/pkg/requestcontext"
)

// Service defines the election operations the HTTP layer needs.
type Service interface {
	CreateElection(ctx context.Context, actor id.VoterID, req models.CreateElectionRequest) (*models.Election, error)
	AddCandidate(ctx context.Context, actor id.VoterID, electionID id.ElectionID, req models.AddCandidateRequest) (*models.Candidate, error)
	DeleteElection(ctx context.Context, actor id.VoterID, electionID id.ElectionID) error
	ListElections(ctx context.Context) ([]models.ElectionSummary, error)
	ListCandidates(ctx context.Context, electionID id.ElectionID) ([]models.Candidate, error)
}

// Handler serves election management. Every route needs an authenticated
// voter; admin checks happen in the service.
type Handler struct {
	elections Service
	logger    *slog.Logger
}

func New(elections Service, logger *slog.Logger) *Handler {
	return &Handler{elections: elections, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/elections", h.handleList)
	r.Post("/elections", h.handleCreate)
	r.Delete("/elections/{electionID}", h.handleDelete)
	r.Get("/elections/{electionID}/candidates", h.handleListCandidates)
	r.Post("/elections/{electionID}/candidates", h.handleAddCandidate)
}

type listResponse struct {
	Elections []models.ElectionSummary `json:"elections"`
}

type candidatesResponse struct {
	Candidates []models.Candidate `json:"candidates"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	out, err := h.elections.ListElections(r.Context())
	if err != nil {
		h.fail(w, r, "failed to list elections", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Elections: out})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.CreateElectionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	e, err := h.elections.CreateElection(ctx, requestcontext.VoterID(ctx), req)
	if err != nil {
		h.fail(w, r, "failed to create election", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	electionID, err := id.ParseElectionID(chi.URLParam(r, "electionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.elections.DeleteElection(ctx, requestcontext.VoterID(ctx), electionID); err != nil {
		h.fail(w, r, "failed to delete election", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	electionID, err := id.ParseElectionID(chi.URLParam(r, "electionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.elections.ListCandidates(r.Context(), electionID)
	if err != nil {
		h.fail(w, r, "failed to list candidates", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, candidatesResponse{Candidates: out})
}

func (h *Handler) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	electionID, err := id.ParseElectionID(chi.URLParam(r, "electionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.AddCandidateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.elections.AddCandidate(ctx, requestcontext.VoterID(ctx), electionID, req)
	if err != nil {
		h.fail(w, r, "failed to add candidate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if h.logger != nil && httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
