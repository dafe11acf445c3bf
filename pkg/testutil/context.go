package testutil

import (
	"net/http"

	id "campusvote/pkg/domain"
	"campusvote/pkg/requestcontext"
)

// WithVoterID authenticates req as voterID, the way the auth middleware would
// after validating a bearer token.
func WithVoterID(req *http.Request, voterID id.VoterID) *http.Request {
	return req.WithContext(requestcontext.WithVoterID(req.Context(), voterID))
}
