package biometric

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"campusvote/internal/biometric/models"
	dErrors "campusvote/pkg/domain-errors"
)

const defaultScanTimeout = 30 * time.Second

// NativeProof asks a device agent (a kiosk fingerprint reader) to scan. The
// agent answers 200 with {"digest": "..."}; 408 or 499 when the user
// cancelled or the prompt timed out; 503 when no sensor is attached.
type NativeProof struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

type NativeOption func(*NativeProof)

// WithHTTPClient replaces the client used to reach the agent.
func WithHTTPClient(client *http.Client) NativeOption {
	return func(n *NativeProof) {
		if client != nil {
			n.client = client
		}
	}
}

// WithScanTimeout bounds one scan, including the time the user takes.
func WithScanTimeout(d time.Duration) NativeOption {
	return func(n *NativeProof) {
		if d > 0 {
			n.timeout = d
		}
	}
}

func NewNativeProof(baseURL string, opts ...NativeOption) *NativeProof {
	n := &NativeProof{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
		timeout: defaultScanTimeout,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *NativeProof) Method() string { return models.MethodNative }

// Available reports whether an agent is configured and its sensor is ready.
func (n *NativeProof) Available(ctx context.Context) bool {
	if n.baseURL == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/v1/health", nil)
	if err != nil {
		return false
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

type scanRequest struct {
	VoterID string `json:"voter_id"`
	Reason  string `json:"reason"`
}

type scanResponse struct {
	Digest string `json:"digest"`
	Error  string `json:"error,omitempty"`
}

func (n *NativeProof) Authenticate(ctx context.Context, req models.ProofRequest) (models.Proof, error) {
	if n.baseURL == "" {
		return models.Proof{}, errUnavailable(nil)
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	body, err := json.Marshal(scanRequest{VoterID: req.VoterID.String(), Reason: "Scan your fingerprint to continue."})
	if err != nil {
		return models.Proof{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode scan request")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/v1/scan", bytes.NewReader(body))
	if err != nil {
		return models.Proof{}, errUnavailable(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(httpReq)
	if err != nil {
		return models.Proof{}, cancelledOrUnavailable(ctx, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusRequestTimeout, 499:
		return models.Proof{}, errCancelled(nil)
	default:
		return models.Proof{}, errUnavailable(fmt.Errorf("agent returned status %d", resp.StatusCode))
	}

	var out scanResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&out); err != nil {
		return models.Proof{}, cancelledOrUnavailable(ctx, fmt.Errorf("decode scan response: %w", err))
	}
	if out.Digest == "" {
		return models.Proof{}, errCancelled(nil)
	}
	return models.Proof{Digest: out.Digest, Method: models.MethodNative}, nil
}
