package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvote/internal/election/models"
	"campusvote/internal/election/service"
	"campusvote/internal/election/store/memory"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/testutil"
)

type adminSet map[id.VoterID]bool

func (a adminSet) RequireAdmin(_ context.Context, voterID id.VoterID, _ string) error {
	if !a[voterID] {
		return dErrors.New(dErrors.CodeForbidden, "admin privileges required")
	}
	return nil
}

type ballotCount map[id.ElectionID]int

func (b ballotCount) CountForElection(_ context.Context, electionID id.ElectionID) (int, error) {
	return b[electionID], nil
}

type fixture struct {
	router  http.Handler
	admin   id.VoterID
	student id.VoterID
	ballots ballotCount
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{admin: id.NewVoterID(), student: id.NewVoterID(), ballots: ballotCount{}}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(memory.New(), adminSet{f.admin: true}, f.ballots, service.WithLogger(logger))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	f.router = r
	return f
}

func (f *fixture) request(t *testing.T, voterID id.VoterID, method, path string, body any) *http.Request {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = testutil.NewRequest(t, method, path)
	} else {
		req = testutil.NewJSONRequest(t, method, path, body)
	}
	return testutil.WithVoterID(req, voterID)
}

func TestElectionLifecycle(t *testing.T) {
	f := newFixture(t)

	var election models.Election
	testutil.Given(t, "an admin creates an election", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, f.request(t, f.admin, http.MethodPost, "/elections",
			models.CreateElectionRequest{Name: "Student Council"}))
		testutil.AssertStatus(t, rr, http.StatusCreated)
		election = *testutil.UnmarshalResponse[models.Election](t, rr)
		assert.Equal(t, f.admin, election.CreatedBy)
	})

	testutil.When(t, "candidates are added", func(t *testing.T) {
		for _, name := range []string{"Alice", "Bob"} {
			rr := testutil.DoRequest(f.router, f.request(t, f.admin, http.MethodPost,
				"/elections/"+election.ID.String()+"/candidates", models.AddCandidateRequest{Name: name}))
			testutil.AssertStatus(t, rr, http.StatusCreated)
		}
	})

	testutil.Then(t, "students see the election with its candidates", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, f.request(t, f.student, http.MethodGet, "/elections", nil))
		testutil.AssertStatusOK(t, rr)
		res := testutil.UnmarshalResponse[listResponse](t, rr)
		require.Len(t, res.Elections, 1)
		assert.Len(t, res.Elections[0].Candidates, 2)

		rr = testutil.DoRequest(f.router, f.request(t, f.student, http.MethodGet,
			"/elections/"+election.ID.String()+"/candidates", nil))
		testutil.AssertStatusOK(t, rr)
		assert.Len(t, testutil.UnmarshalResponse[candidatesResponse](t, rr).Candidates, 2)
	})

	testutil.Then(t, "a student cannot add a candidate", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, f.request(t, f.student, http.MethodPost,
			"/elections/"+election.ID.String()+"/candidates", models.AddCandidateRequest{Name: "Mallory"}))
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
	})

	testutil.Then(t, "an election with ballots cannot be deleted", func(t *testing.T) {
		f.ballots[election.ID] = 1
		rr := testutil.DoRequest(f.router, f.request(t, f.admin, http.MethodDelete,
			"/elections/"+election.ID.String(), nil))
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})

	testutil.Then(t, "without ballots the creator deletes it", func(t *testing.T) {
		f.ballots[election.ID] = 0
		rr := testutil.DoRequest(f.router, f.request(t, f.admin, http.MethodDelete,
			"/elections/"+election.ID.String(), nil))
		testutil.AssertStatus(t, rr, http.StatusNoContent)

		rr = testutil.DoRequest(f.router, f.request(t, f.student, http.MethodGet,
			"/elections/"+election.ID.String()+"/candidates", nil))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})
}

func TestCreateElectionValidation(t *testing.T) {
	f := newFixture(t)

	t.Run("blank name", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, f.request(t, f.admin, http.MethodPost, "/elections",
			models.CreateElectionRequest{Name: " "}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("unknown field", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, f.request(t, f.admin, http.MethodPost, "/elections",
			map[string]any{"name": "X", "created_by": f.student.String()}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("student", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, f.request(t, f.student, http.MethodPost, "/elections",
			models.CreateElectionRequest{Name: "Rogue"}))
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
	})
}

func TestMalformedElectionID(t *testing.T) {
	f := newFixture(t)
	rr := testutil.DoRequest(f.router, f.request(t, f.admin, http.MethodDelete, "/elections/not-a-uuid", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
}
