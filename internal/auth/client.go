// Package auth covers phone-OTP login: requesting and verifying codes
// against the remote API and keeping the resulting session on the device.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/freshmandiapp/freshmandi/internal/httpclient"
)

// defaultResendWindow applies when the server does not dictate one.
const defaultResendWindow = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *httpclient.Client
}

func NewClient(baseURL string, hc *httpclient.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// OTPChallenge tracks an outstanding code and when a resend becomes allowed.
type OTPChallenge struct {
	Phone    string
	ResendAt time.Time
}

// Countdown returns how long the resend control stays disabled, never
// negative. The UI ticks this down once per second.
func (c OTPChallenge) Countdown(now time.Time) time.Duration {
	remaining := c.ResendAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RequestOTP asks the server to send a code to the phone. The returned
// challenge carries the resend deadline, taken from the server when given.
func (c *Client) RequestOTP(ctx context.Context, phone string) (*OTPChallenge, error) {
	payload, err := json.Marshal(map[string]string{"phone": phone})
	if err != nil {
		return nil, fmt.Errorf("encode otp request: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, c.baseURL+"/auth/otp/request", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("request otp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request otp: unexpected status %d", resp.StatusCode)
	}

	var ack struct {
		RetryAfterSeconds int `json:"retryAfterSeconds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("decode otp response: %w", err)
	}

	window := defaultResendWindow
	if ack.RetryAfterSeconds > 0 {
		window = time.Duration(ack.RetryAfterSeconds) * time.Second
	}

	return &OTPChallenge{
		Phone:    phone,
		ResendAt: time.Now().Add(window),
	}, nil
}

// VerifyOTP exchanges phone and code for a session token.
func (c *Client) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	payload, err := json.Marshal(map[string]string{"phone": phone, "otp": code})
	if err != nil {
		return "", fmt.Errorf("encode verify request: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, c.baseURL+"/auth/otp/verify", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("verify otp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", fmt.Errorf("otp rejected")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("verify otp: unexpected status %d", resp.StatusCode)
	}

	var ack struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("decode verify response: %w", err)
	}
	if ack.Token == "" {
		return "", fmt.Errorf("verify otp: empty token in response")
	}
	return ack.Token, nil
}
