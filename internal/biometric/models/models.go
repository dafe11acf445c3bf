package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mssola/useragent"

	id "campusvote/pkg/domain"
)

// Proof methods.
const (
	MethodNative = "native"
	MethodWeb    = "web"
)

// ProofRequest is what a caller hands the authenticator. Native proofs only
// need the voter; web proofs carry the assertion produced in the browser.
type ProofRequest struct {
	VoterID id.VoterID
	// AuthenticatorData is the raw authenticatorData of a WebAuthn assertion.
	AuthenticatorData []byte
	// ClientDataJSON is carried for the record; it is never evidence of a
	// fingerprint on its own.
	ClientDataJSON []byte
	UserAgent      string
}

// Proof is a freshly produced biometric digest.
type Proof struct {
	Digest string
	Method string
}

// Credential is a voter's enrolled biometric digest. A voter has at most one.
type Credential struct {
	VoterID    id.VoterID
	Digest     string
	DeviceInfo DeviceInfo
	UpdatedAt  time.Time
}

// DeviceInfo describes the device a credential was enrolled from. It is kept
// for display and audit only and never takes part in verification.
type DeviceInfo struct {
	Method   string `json:"method"`
	Browser  string `json:"browser,omitempty"`
	OS       string `json:"os,omitempty"`
	Platform string `json:"platform,omitempty"`
	Mobile   bool   `json:"mobile"`
}

func NewDeviceInfo(method, userAgent string) DeviceInfo {
	info := DeviceInfo{Method: method}
	if strings.TrimSpace(userAgent) == "" {
		return info
	}
	ua := useragent.New(userAgent)
	name, version := ua.Browser()
	if name != "" {
		info.Browser = strings.TrimSpace(name + " " + version)
	}
	info.OS = ua.OS()
	info.Platform = ua.Platform()
	info.Mobile = ua.Mobile()
	return info
}

// DisplayName renders the device as "Browser on OS".
func (d DeviceInfo) DisplayName() string {
	browser := d.Browser
	if browser == "" {
		browser = "Unknown browser"
	}
	os := d.OS
	if os == "" {
		os = d.Platform
	}
	if os == "" {
		return fmt.Sprintf("%s (%s)", browser, d.Method)
	}
	return fmt.Sprintf("%s on %s", browser, os)
}
