package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampRating(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{9, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampRating(tt.in))
	}
}

func TestWatchProgressFinalize(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		progress  WatchProgress
		completed bool
	}{
		{"below threshold stays open", WatchProgress{PositionSec: 50, DurationSec: 100}, false},
		{"exactly 95 percent completes", WatchProgress{PositionSec: 95, DurationSec: 100}, true},
		{"past the end completes", WatchProgress{PositionSec: 130, DurationSec: 100}, true},
		{"unknown duration never completes", WatchProgress{PositionSec: 5000, DurationSec: 0}, false},
		{"reported completion survives a low position", WatchProgress{PositionSec: 10, DurationSec: 100, Completed: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.progress.Finalize(now)
			assert.Equal(t, tt.completed, tt.progress.Completed)
			assert.Equal(t, now, tt.progress.WatchedAt)
		})
	}
}
