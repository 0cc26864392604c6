package recaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tuitionhub/tuitionhub-web/pkg/httpclient"
)

// DefaultVerifyURL is Google's token verification endpoint
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// ErrRejected is returned when Google does not accept the token
var ErrRejected = errors.New("recaptcha verification failed")

// Response represents the response from Google's reCAPTCHA verification API
type Response struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verifier handles reCAPTCHA verification
type Verifier struct {
	secretKey  string
	verifyURL  string
	httpClient httpclient.Client
}

// NewVerifier creates a new reCAPTCHA verifier
func NewVerifier(secretKey string, httpClient httpclient.Client) *Verifier {
	return &Verifier{
		secretKey:  secretKey,
		verifyURL:  DefaultVerifyURL,
		httpClient: httpClient,
	}
}

// WithVerifyURL points the verifier at another endpoint
func (v *Verifier) WithVerifyURL(u string) *Verifier {
	v.verifyURL = u
	return v
}

// Verify checks a client token with Google
func (v *Verifier) Verify(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("missing token: %w", ErrRejected)
	}

	data := url.Values{}
	data.Set("secret", v.secretKey)
	data.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build recaptcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify recaptcha: %w", err)
	}
	defer resp.Body.Close()

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode recaptcha response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("%w: %s", ErrRejected, strings.Join(result.ErrorCodes, ","))
	}
	return nil
}
