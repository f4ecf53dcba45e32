package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// OTPDevProvider talks to the otp.dev REST API using HTTP basic auth.
type OTPDevProvider struct {
	BaseURL      string
	AppID        string
	ClientID     string
	ClientSecret string
	Channel      string
	client       *http.Client
}

func NewOTPDevProvider(baseURL, appID, clientID, clientSecret, channel string) *OTPDevProvider {
	if baseURL == "" {
		baseURL = "https://api.otp.dev/v1"
	}
	if channel == "" {
		channel = "sms"
	}
	return &OTPDevProvider{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		AppID:        appID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Channel:      channel,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

type otpdevSendReq struct {
	AppID       string `json:"app_id"`
	PhoneNumber string `json:"phone_number"`
	Channel     string `json:"channel"`
}

type otpdevSendResp struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

type otpdevVerifyReq struct {
	OrderID string `json:"order_id"`
	Code    string `json:"code"`
}

type otpdevVerifyResp struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

func (p *OTPDevProvider) Send(ctx context.Context, phone string) (string, error) {
	status, body, err := p.post(ctx, "/send", otpdevSendReq{AppID: p.AppID, PhoneNumber: phone, Channel: p.Channel})
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		log.Printf("[otp] send failed status=%d body=%s", status, string(body))
		return "", fmt.Errorf("%w: send returned %d", ErrProviderUnavailable, status)
	}
	var out otpdevSendResp
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("otp.dev send: decode: %w", err)
	}
	if out.OrderID == "" {
		return "", fmt.Errorf("%w: send returned no order_id", ErrProviderUnavailable)
	}
	return out.OrderID, nil
}

// Verify reports false (not an error) when the provider rejects the code with a 4xx.
func (p *OTPDevProvider) Verify(ctx context.Context, orderID, code string) (bool, error) {
	status, body, err := p.post(ctx, "/verify", otpdevVerifyReq{OrderID: orderID, Code: code})
	if err != nil {
		return false, err
	}
	if status >= 400 && status < 500 {
		log.Printf("[otp] verify rejected status=%d body=%s", status, string(body))
		return false, nil
	}
	if status < 200 || status >= 300 {
		return false, fmt.Errorf("%w: verify returned %d", ErrProviderUnavailable, status)
	}
	var out otpdevVerifyResp
	if err := json.Unmarshal(body, &out); err != nil {
		return false, fmt.Errorf("otp.dev verify: decode: %w", err)
	}
	return out.Verified, nil
}

func (p *OTPDevProvider) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.ClientID, p.ClientSecret)
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody, nil
}
