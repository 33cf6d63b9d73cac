package bank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLuhn(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{number: "4242424242424242", want: true},
		{number: "4111111111111111", want: true},
		{number: "4242424242424241", want: false},
		{number: "1234567890123456", want: false},
		{number: "", want: false},
		{number: "4242abc", want: false},
	}

	for _, tt := range tests {
		if got := Luhn(tt.number); got != tt.want {
			t.Fatalf("Luhn(%q) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestValidateCard(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	valid := Card{Number: "4242 4242 4242 4242", ExpiryMonth: 12, ExpiryYear: 25, CVC: "123"}

	assert.NoError(t, ValidateCard(valid, now))

	badNumber := valid
	badNumber.Number = "4242424242424241"
	assert.ErrorIs(t, ValidateCard(badNumber, now), ErrCardNumber)

	expired := valid
	expired.ExpiryMonth = 5
	expired.ExpiryYear = 2024
	assert.ErrorIs(t, ValidateCard(expired, now), ErrCardExpiry)

	// Valid through the end of the expiry month.
	edge := valid
	edge.ExpiryMonth = 6
	edge.ExpiryYear = 2024
	assert.NoError(t, ValidateCard(edge, now))

	badCVC := valid
	badCVC.CVC = "12"
	assert.ErrorIs(t, ValidateCard(badCVC, now), ErrCardCVC)
}

func TestProcessPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pay", r.URL.Path)
		var card Card
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&card))
		assert.Equal(t, 299.0, card.Amount)
		json.NewEncoder(w).Encode(Result{Success: true, TransactionID: "TXN1", AuthCode: "123456"})
	}))
	defer srv.Close()

	c := NewClientFromEnv()
	c.BaseURL = srv.URL

	res := c.ProcessPayment(context.Background(), Card{Number: "4242424242424242"}, 299)
	assert.True(t, res.Success)
	assert.Equal(t, "TXN1", res.TransactionID)
}

func TestProcessPaymentUnreachable(t *testing.T) {
	c := NewClientFromEnv()
	c.BaseURL = "http://127.0.0.1:1"

	res := c.ProcessPayment(context.Background(), Card{}, 10)
	assert.False(t, res.Success)
	assert.Equal(t, "bank service unavailable", res.Error)
}
