package entitlements

import (
	"testing"
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		isFree bool
		price  float64
		want   AccessMode
	}{
		{isFree: true, price: 0, want: AccessFree},
		{isFree: true, price: 499, want: AccessFree},
		{isFree: false, price: 0, want: AccessPPV},
		{isFree: false, price: 0.01, want: AccessSubscription},
		{isFree: false, price: 1, want: AccessSubscription},
		{isFree: false, price: 1.01, want: AccessPPV},
		{isFree: false, price: 499, want: AccessPPV},
	}

	for _, tt := range tests {
		if got := Classify(tt.isFree, tt.price); got != tt.want {
			t.Fatalf("Classify(%v, %v) = %q, want %q", tt.isFree, tt.price, got, tt.want)
		}
	}
}

type stubRepo struct {
	purchased  bool
	subscribed bool
}

func (s *stubRepo) HasPurchase(userID, contentID string) (bool, error) {
	return s.purchased, nil
}

func (s *stubRepo) HasCurrentActiveSubscription(userID string, at time.Time) (bool, error) {
	return s.subscribed, nil
}

func TestCanWatch(t *testing.T) {
	now := time.Now()
	free := &models.Content{ID: "c1", IsFree: true}
	subOnly := &models.Content{ID: "c2", Price: 1}
	ppv := &models.Content{ID: "c3", Price: 299}

	tests := []struct {
		name    string
		userID  string
		content *models.Content
		repo    stubRepo
		want    bool
	}{
		{name: "free content anonymous", userID: "", content: free, want: true},
		{name: "free content logged in", userID: "u1", content: free, want: true},
		{name: "anonymous denied for subscription bracket", userID: "", content: subOnly, want: false},
		{name: "anonymous denied for ppv", userID: "", content: ppv, want: false},
		{name: "purchase beats everything", userID: "u1", content: ppv, repo: stubRepo{purchased: true}, want: true},
		{name: "purchase works without subscription", userID: "u1", content: subOnly, repo: stubRepo{purchased: true}, want: true},
		{name: "subscription bracket with active window", userID: "u1", content: subOnly, repo: stubRepo{subscribed: true}, want: true},
		{name: "subscription bracket without window", userID: "u1", content: subOnly, want: false},
		{name: "ppv not covered by subscription", userID: "u1", content: ppv, repo: stubRepo{subscribed: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&tt.repo)
			got, err := r.CanWatch(tt.userID, tt.content, now)
			if err != nil {
				t.Fatalf("CanWatch returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CanWatch = %v, want %v", got, tt.want)
			}
		})
	}
}
