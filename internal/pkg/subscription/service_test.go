package subscription

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	plans map[string]*models.SubscriptionPlan
	subs  []*models.UserSubscription
	next  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{plans: map[string]*models.SubscriptionPlan{}}
}

func (f *fakeRepo) addPlan(code string, months int, price float64) *models.SubscriptionPlan {
	p := &models.SubscriptionPlan{ID: "plan-" + code, Code: code, Name: code, PeriodMonths: months, Price: price, IsActive: true}
	f.plans[code] = p
	return p
}

func (f *fakeRepo) GetActivePlanByCode(code string) (*models.SubscriptionPlan, error) {
	if p, ok := f.plans[code]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListActivePlans() ([]models.SubscriptionPlan, error) {
	var out []models.SubscriptionPlan
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(id string) (*models.UserSubscription, error) {
	for _, s := range f.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetByIDForUser(id, userID string) (*models.UserSubscription, error) {
	for _, s := range f.subs {
		if s.ID == id && s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetCurrentActive(userID string, at time.Time) (*models.UserSubscription, error) {
	var best *models.UserSubscription
	for _, s := range f.subs {
		if s.UserID != userID || !s.IsActiveAt(at) {
			continue
		}
		if best == nil || s.ExpiresAt == nil || (best.ExpiresAt != nil && s.ExpiresAt.After(*best.ExpiresAt)) {
			best = s
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (f *fakeRepo) ListByUser(userID string) ([]models.UserSubscription, error) {
	var out []models.UserSubscription
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(sub *models.UserSubscription) error {
	f.next++
	if sub.ID == "" {
		sub.ID = fmt.Sprintf("sub-%d", f.next)
	}
	cp := *sub
	f.subs = append(f.subs, &cp)
	return nil
}

func (f *fakeRepo) Update(sub *models.UserSubscription) error {
	for i, s := range f.subs {
		if s.ID == sub.ID {
			cp := *sub
			f.subs[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestActivateFreshWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.addPlan("basic", 1, 299)
	svc := NewService(repo)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sub, err := svc.Activate("u1", "basic", false, now)
	assert.NoError(t, err)
	assert.Equal(t, now, sub.StartedAt)
	// 30-day month approximation, not a calendar month.
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *sub.ExpiresAt)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
}

func TestActivateUnknownPlan(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.Activate("u1", "nope", false, time.Now())
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}

func TestActivateChainedExtension(t *testing.T) {
	repo := newFakeRepo()
	repo.addPlan("basic", 1, 299)
	svc := NewService(repo)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.Activate("u1", "basic", false, start)
	assert.NoError(t, err)

	// Ten days in, extend after the current window.
	now := start.Add(10 * 24 * time.Hour)
	second, err := svc.Activate("u1", "basic", true, now)
	assert.NoError(t, err)

	// The new window chains onto the old expiry with no gap or overlap.
	assert.Equal(t, *first.ExpiresAt, second.StartedAt)
	assert.Equal(t, first.ExpiresAt.Add(30*24*time.Hour), *second.ExpiresAt)

	// The original row is left untouched.
	kept, err := repo.GetByID(first.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, kept.Status)
}

func TestActivateReplacesCurrent(t *testing.T) {
	repo := newFakeRepo()
	repo.addPlan("basic", 1, 299)
	repo.addPlan("year", 12, 2990)
	svc := NewService(repo)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.Activate("u1", "basic", false, start)
	assert.NoError(t, err)

	now := start.Add(5 * 24 * time.Hour)
	second, err := svc.Activate("u1", "year", false, now)
	assert.NoError(t, err)
	assert.Equal(t, now, second.StartedAt)
	assert.Equal(t, now.Add(360*24*time.Hour), *second.ExpiresAt)

	cancelled, err := repo.GetByID(first.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, cancelled.Status)
}

func TestCancelWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.addPlan("basic", 1, 299)
	svc := NewService(repo)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sub, err := svc.Activate("u1", "basic", false, start)
	assert.NoError(t, err)

	// Day 15: too late.
	_, err = svc.Cancel("u1", sub.ID, start.Add(15*24*time.Hour))
	assert.True(t, errors.Is(err, ErrNotCancellable))

	// Day 14: still allowed.
	got, err := svc.Cancel("u1", sub.ID, start.Add(14*24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, got.Status)
}

func TestCancelWithoutActiveSubscription(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.Cancel("u1", "", time.Now())
	assert.True(t, errors.Is(err, ErrSubscriptionNotFound))
}

func TestExtend(t *testing.T) {
	repo := newFakeRepo()
	repo.addPlan("basic", 1, 299)
	svc := NewService(repo)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sub, err := svc.Activate("u1", "basic", false, start)
	assert.NoError(t, err)

	got, err := svc.Extend(sub.ID, 2, start.Add(24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, sub.ExpiresAt.Add(60*24*time.Hour), *got.ExpiresAt)
	assert.Equal(t, models.SubscriptionStatusActive, got.Status)
}

func TestWillBeExtended(t *testing.T) {
	repo := newFakeRepo()
	repo.addPlan("basic", 1, 299)
	svc := NewService(repo)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.Activate("u1", "basic", false, start)
	assert.NoError(t, err)

	now := start.Add(24 * time.Hour)
	assert.False(t, svc.WillBeExtended(first, now))

	_, err = svc.Activate("u1", "basic", true, now)
	assert.NoError(t, err)
	assert.True(t, svc.WillBeExtended(first, now))
}
