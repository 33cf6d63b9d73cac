package bank

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

	"github.com/Lomoncivici/Kyrsach4/internal/pkg/env"
)

const defaultBankBaseURL = "http://localhost:5000"

// Client talks to the mock bank microservice over plain HTTP. Calls are
// synchronous with short timeouts and no retries; an unreachable service
// maps to a failed Result, never an error that crashes a request.
type Client struct {
	BaseURL string

	HealthClient *http.Client
	CheckClient  *http.Client
	PayClient    *http.Client
}

// Result is the bank's JSON contract for both card checks and payments.
type Result struct {
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	Hint          string `json:"hint,omitempty"`
	Message       string `json:"message,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	AuthCode      string `json:"auth_code,omitempty"`
}

// Card carries the fields the bank expects for /api/check and /api/pay.
type Card struct {
	Number      string  `json:"card_number"`
	ExpiryMonth int     `json:"expiry_month"`
	ExpiryYear  int     `json:"expiry_year"`
	CVC         string  `json:"cvc"`
	Amount      float64 `json:"amount,omitempty"`
}

func NewClientFromEnv() *Client {
	base := strings.TrimRight(env.GetEnv("BANK_BASE_URL", defaultBankBaseURL), "/")

	return &Client{
		BaseURL:      base,
		HealthClient: &http.Client{Timeout: 3 * time.Second},
		CheckClient:  &http.Client{Timeout: 5 * time.Second},
		PayClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// HealthCheck reports whether the bank service answers at all.
func (c *Client) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.HealthClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// CheckCard asks the bank to validate the card without charging it.
func (c *Client) CheckCard(ctx context.Context, card Card) Result {
	card.Amount = 0
	return c.post(ctx, c.CheckClient, "/api/check", card)
}

// ProcessPayment charges the card for the given amount.
func (c *Client) ProcessPayment(ctx context.Context, card Card, amount float64) Result {
	card.Amount = amount
	res := c.post(ctx, c.PayClient, "/api/pay", card)
	log.Printf("[bank] payment result: success=%v txn=%s error=%s", res.Success, res.TransactionID, res.Error)
	return res
}

func (c *Client) post(ctx context.Context, client *http.Client, path string, payload any) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("request encoding failed: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("request build failed: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Result{Success: false, Error: "bank service unavailable"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("response read failed: %v", err)}
	}

	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("unexpected bank response: %v", err)}
	}
	return res
}
