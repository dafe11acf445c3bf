package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	lmodels "campusvote/internal/ledger/models"
	"campusvote/internal/voting/models"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/platform/httputil"
	"campusvote/pkg/requestcontext"
)

// Service defines the voting operations the HTTP layer needs.
type Service interface {
	CastVote(ctx context.Context, voterID id.VoterID, electionID id.ElectionID, req models.CastVoteRequest, userAgent string) (*models.VoteReceipt, error)
	HasVoted(ctx context.Context, voterID id.VoterID, electionID id.ElectionID) (*models.VoteStatus, error)
	Tally(ctx context.Context, electionID id.ElectionID) (*models.Tally, error)
	Report(ctx context.Context, actor id.VoterID, electionID id.ElectionID) (*models.ElectionReport, error)
	VerifyLedger(ctx context.Context, actor id.VoterID) (*lmodels.ChainReport, error)
	RecentAudit(ctx context.Context, actor id.VoterID, limit int) ([]models.AuditEntry, error)
}

// Handler serves ballots, tallies and ledger verification. Every route needs
// an authenticated voter.
type Handler struct {
	voting Service
	logger *slog.Logger
}

func New(voting Service, logger *slog.Logger) *Handler {
	return &Handler{voting: voting, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/elections/{electionID}/votes", h.handleCastVote)
	r.Get("/elections/{electionID}/votes/me", h.handleHasVoted)
	r.Get("/elections/{electionID}/tally", h.handleTally)
	r.Get("/elections/{electionID}/report", h.handleReport)
	r.Get("/ledger/verify", h.handleVerify)
	r.Get("/audit/recent", h.handleRecentAudit)
}

type auditResponse struct {
	Events []models.AuditEntry `json:"events"`
}

func (h *Handler) handleCastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	electionID, err := id.ParseElectionID(chi.URLParam(r, "electionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.CastVoteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	receipt, err := h.voting.CastVote(ctx, requestcontext.VoterID(ctx), electionID, req, r.UserAgent())
	if err != nil {
		h.fail(w, r, "vote rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) handleHasVoted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	electionID, err := id.ParseElectionID(chi.URLParam(r, "electionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	status, err := h.voting.HasVoted(ctx, requestcontext.VoterID(ctx), electionID)
	if err != nil {
		h.fail(w, r, "failed to read vote status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) handleTally(w http.ResponseWriter, r *http.Request) {
	electionID, err := id.ParseElectionID(chi.URLParam(r, "electionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	tally, err := h.voting.Tally(r.Context(), electionID)
	if err != nil {
		h.fail(w, r, "failed to tally election", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tally)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	electionID, err := id.ParseElectionID(chi.URLParam(r, "electionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	report, err := h.voting.Report(ctx, requestcontext.VoterID(ctx), electionID)
	if err != nil {
		h.fail(w, r, "failed to build election report", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// handleVerify answers 200 for a broken chain too; the report says where it
// broke.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.voting.VerifyLedger(ctx, requestcontext.VoterID(ctx))
	if err != nil {
		h.fail(w, r, "ledger verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleRecentAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	events, err := h.voting.RecentAudit(ctx, requestcontext.VoterID(ctx), limit)
	if err != nil {
		h.fail(w, r, "failed to read audit trail", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, auditResponse{Events: events})
}

// fail logs server-side faults at error and expected rejections at info, then
// writes the error envelope.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if h.logger != nil {
		level := slog.LevelInfo
		if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		h.logger.Log(ctx, level, msg,
			"code", string(dErrors.CodeOf(err)),
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
