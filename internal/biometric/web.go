package biometric

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"campusvote/internal/biometric/models"
)

// WebProof derives the digest from a WebAuthn assertion the browser already
// produced. The platform prompt runs client-side; an empty assertion means
// the user dismissed it.
type WebProof struct{}

func NewWebProof() *WebProof {
	return &WebProof{}
}

func (w *WebProof) Method() string { return models.MethodWeb }

// Available is always true: the capability check happens in the browser.
func (w *WebProof) Available(context.Context) bool { return true }

func (w *WebProof) Authenticate(ctx context.Context, req models.ProofRequest) (models.Proof, error) {
	if err := ctx.Err(); err != nil {
		return models.Proof{}, errCancelled(err)
	}
	// Client data alone is not evidence of a fingerprint.
	if len(req.AuthenticatorData) == 0 {
		return models.Proof{}, errCancelled(nil)
	}
	return models.Proof{Digest: WebDigest(req.AuthenticatorData), Method: models.MethodWeb}, nil
}

// WebDigest is the lowercase hex SHA-256 of the bytes rendered as
// comma-separated decimals ("1,2,255"), the form web clients enroll with.
func WebDigest(data []byte) string {
	var b strings.Builder
	for i, v := range data {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
