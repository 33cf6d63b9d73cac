package subscription

import (
	"errors"
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
)

var (
	// ErrPlanNotFound is returned when the requested plan does not exist or is inactive.
	ErrPlanNotFound = errors.New("subscription plan not found")
	// ErrNotCancellable is returned when the 14-day cancellation window has passed
	// or the subscription is not active with a future expiry.
	ErrNotCancellable = errors.New("subscription can no longer be cancelled")
	// ErrSubscriptionNotFound is returned when no matching subscription row exists.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// Service owns subscription window arithmetic: activation, chained extension,
// cancellation and the admin extend operation.
type Service struct {
	repo Repository
}

// NewService creates a subscription service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a subscription service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Activate creates a subscription window for the user on the given plan.
//
// Without a currently-active subscription the window is [now, now+period].
// With one, extendAfterCurrent chains the new window onto the current expiry
// with no gap or overlap and leaves the old row untouched; otherwise the old
// row is cancelled and a fresh window starts at now. Periods are always
// period_months*30 days, never calendar months.
func (s *Service) Activate(userID, planCode string, extendAfterCurrent bool, now time.Time) (*models.UserSubscription, error) {
	plan, err := s.repo.GetActivePlanByCode(planCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	current, err := s.repo.GetCurrentActive(userID, now)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	start := now
	if current != nil {
		if extendAfterCurrent && current.ExpiresAt != nil {
			// Chain onto the running window; the current row stays as is.
			start = *current.ExpiresAt
		} else {
			current.Status = models.SubscriptionStatusCancelled
			if err := s.repo.Update(current); err != nil {
				return nil, err
			}
		}
	}

	expires := start.Add(plan.Period())
	sub := &models.UserSubscription{
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    models.SubscriptionStatusActive,
		StartedAt: start,
		ExpiresAt: &expires,
		Plan:      plan,
	}
	if err := s.repo.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Cancel marks the subscription cancelled when the cancellation window allows it.
func (s *Service) Cancel(userID, subscriptionID string, now time.Time) (*models.UserSubscription, error) {
	var sub *models.UserSubscription
	var err error
	if subscriptionID != "" {
		sub, err = s.repo.GetByIDForUser(subscriptionID, userID)
	} else {
		sub, err = s.repo.GetCurrentActive(userID, now)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	if !sub.CanBeCancelledAt(now) {
		return nil, ErrNotCancellable
	}

	sub.Status = models.SubscriptionStatusCancelled
	if err := s.repo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Extend pushes a subscription's expiry forward by months*30 days and forces
// the row active. Expired or unbounded rows restart from now. Used by the
// staff back-office.
func (s *Service) Extend(subscriptionID string, months int, now time.Time) (*models.UserSubscription, error) {
	sub, err := s.repo.GetByID(subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	added := time.Duration(months) * models.SubscriptionDaysPerMonth * 24 * time.Hour
	var expires time.Time
	if sub.ExpiresAt != nil {
		expires = sub.ExpiresAt.Add(added)
	} else {
		expires = now.Add(added)
	}
	sub.ExpiresAt = &expires
	sub.Status = models.SubscriptionStatusActive
	if err := s.repo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// GetPlan resolves an active plan by its code.
func (s *Service) GetPlan(code string) (*models.SubscriptionPlan, error) {
	plan, err := s.repo.GetActivePlanByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Overview bundles what the subscription pages and the API need in one call.
type Overview struct {
	Current *models.UserSubscription
	All     []models.UserSubscription
	Plans   []models.SubscriptionPlan
}

// GetOverview loads the user's current window, full history and the active plans.
func (s *Service) GetOverview(userID string, now time.Time) (*Overview, error) {
	current, err := s.repo.GetCurrentActive(userID, now)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	all, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	plans, err := s.repo.ListActivePlans()
	if err != nil {
		return nil, err
	}

	return &Overview{Current: current, All: all, Plans: plans}, nil
}

// WillBeExtended reports whether another active window (current or queued)
// exists besides the given subscription.
func (s *Service) WillBeExtended(sub *models.UserSubscription, now time.Time) bool {
	all, err := s.repo.ListByUser(sub.UserID)
	if err != nil {
		return false
	}
	for i := range all {
		if all[i].ID == sub.ID {
			continue
		}
		if all[i].IsActiveAt(now) || all[i].IsFutureAt(now) {
			return true
		}
	}
	return false
}
