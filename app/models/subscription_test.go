package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func TestSubscriptionIsActiveAt(t *testing.T) {
	now := ts("2025-06-15T12:00:00Z")

	tests := []struct {
		name string
		sub  UserSubscription
		want bool
	}{
		{
			"inside window",
			UserSubscription{Status: SubscriptionStatusActive, StartedAt: ts("2025-06-01T00:00:00Z"), ExpiresAt: tsp("2025-07-01T00:00:00Z")},
			true,
		},
		{
			"not started yet",
			UserSubscription{Status: SubscriptionStatusActive, StartedAt: ts("2025-07-01T00:00:00Z"), ExpiresAt: tsp("2025-08-01T00:00:00Z")},
			false,
		},
		{
			"expired",
			UserSubscription{Status: SubscriptionStatusActive, StartedAt: ts("2025-01-01T00:00:00Z"), ExpiresAt: tsp("2025-02-01T00:00:00Z")},
			false,
		},
		{
			"cancelled",
			UserSubscription{Status: SubscriptionStatusCancelled, StartedAt: ts("2025-06-01T00:00:00Z"), ExpiresAt: tsp("2025-07-01T00:00:00Z")},
			false,
		},
		{
			"unbounded expiry",
			UserSubscription{Status: SubscriptionStatusActive, StartedAt: ts("2025-06-01T00:00:00Z")},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.IsActiveAt(now))
		})
	}
}

func TestSubscriptionCanBeCancelledAt(t *testing.T) {
	started := ts("2025-06-01T00:00:00Z")
	expires := tsp("2025-07-01T00:00:00Z")

	sub := UserSubscription{Status: SubscriptionStatusActive, StartedAt: started, ExpiresAt: expires}

	assert.True(t, sub.CanBeCancelledAt(ts("2025-06-10T00:00:00Z")))
	assert.True(t, sub.CanBeCancelledAt(ts("2025-06-15T00:00:00Z")))
	assert.False(t, sub.CanBeCancelledAt(ts("2025-06-16T00:00:01Z")))

	cancelled := sub
	cancelled.Status = SubscriptionStatusCancelled
	assert.False(t, cancelled.CanBeCancelledAt(ts("2025-06-10T00:00:00Z")))
}

func TestSubscriptionDaysLeftAt(t *testing.T) {
	sub := UserSubscription{
		Status:    SubscriptionStatusActive,
		StartedAt: ts("2025-06-01T00:00:00Z"),
		ExpiresAt: tsp("2025-06-20T00:00:00Z"),
	}

	assert.Equal(t, 10, sub.DaysLeftAt(ts("2025-06-10T00:00:00Z")))
	assert.Equal(t, 0, sub.DaysLeftAt(ts("2025-06-21T00:00:00Z")))

	unbounded := UserSubscription{Status: SubscriptionStatusActive, StartedAt: ts("2025-06-01T00:00:00Z")}
	assert.Equal(t, 0, unbounded.DaysLeftAt(ts("2025-06-10T00:00:00Z")))
}

func TestSubscriptionIsExpiringSoonAt(t *testing.T) {
	sub := UserSubscription{
		Status:    SubscriptionStatusActive,
		StartedAt: ts("2025-06-01T00:00:00Z"),
		ExpiresAt: tsp("2025-06-20T00:00:00Z"),
	}

	assert.False(t, sub.IsExpiringSoonAt(ts("2025-06-10T00:00:00Z")))
	assert.True(t, sub.IsExpiringSoonAt(ts("2025-06-16T00:00:00Z")))
	assert.False(t, sub.IsExpiringSoonAt(ts("2025-06-21T00:00:00Z")))
}

func TestSubscriptionActualStatusAt(t *testing.T) {
	now := ts("2025-06-15T12:00:00Z")

	active := UserSubscription{Status: SubscriptionStatusActive, ExpiresAt: tsp("2025-07-01T00:00:00Z")}
	assert.Equal(t, SubscriptionStatusActive, active.ActualStatusAt(now))

	stale := UserSubscription{Status: SubscriptionStatusActive, ExpiresAt: tsp("2025-06-01T00:00:00Z")}
	assert.Equal(t, SubscriptionStatusExpired, stale.ActualStatusAt(now))

	cancelled := UserSubscription{Status: SubscriptionStatusCancelled, ExpiresAt: tsp("2025-07-01T00:00:00Z")}
	assert.Equal(t, SubscriptionStatusCancelled, cancelled.ActualStatusAt(now))
}

func TestPlanPeriod(t *testing.T) {
	plan := SubscriptionPlan{PeriodMonths: 3}
	assert.Equal(t, 90*24*time.Hour, plan.Period())
}
