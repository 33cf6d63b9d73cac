package entitlements

import (
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
)

// AccessMode classifies how a content item can be watched.
type AccessMode string

const (
	AccessFree         AccessMode = "free"
	AccessSubscription AccessMode = "subscription"
	AccessPPV          AccessMode = "ppv"
)

// SubscriptionPriceCeiling bounds the price bracket that marks content as
// covered by a subscription instead of pay-per-view.
const SubscriptionPriceCeiling = 1.0

// Classify maps the pricing convention to an access mode. This is the single
// place the "0 < price <= 1 means subscription" rule lives.
func Classify(isFree bool, price float64) AccessMode {
	if isFree {
		return AccessFree
	}
	if price > 0 && price <= SubscriptionPriceCeiling {
		return AccessSubscription
	}
	return AccessPPV
}

// ClassifyContent is Classify applied to a content row.
func ClassifyContent(c *models.Content) AccessMode {
	return Classify(c.IsFree, c.Price)
}

// Repository provides the DB lookups the resolver needs.
type Repository interface {
	HasPurchase(userID, contentID string) (bool, error)
	HasCurrentActiveSubscription(userID string, at time.Time) (bool, error)
}

// Resolver answers the per-user, per-content watch-access question.
type Resolver struct {
	repo Repository
}

// NewResolver creates a resolver from an injected repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// NewResolverFromDB creates a resolver from a GORM DB handle.
func NewResolverFromDB(db *gorm.DB) *Resolver {
	return NewResolver(NewRepository(db))
}

// CanWatch decides whether the user may stream the content right now.
// An empty userID means anonymous.
func (r *Resolver) CanWatch(userID string, content *models.Content, now time.Time) (bool, error) {
	switch ClassifyContent(content) {
	case AccessFree:
		return true, nil
	}

	if userID == "" {
		return false, nil
	}

	owned, err := r.repo.HasPurchase(userID, content.ID)
	if err != nil {
		return false, err
	}
	if owned {
		return true, nil
	}

	if ClassifyContent(content) == AccessSubscription {
		return r.repo.HasCurrentActiveSubscription(userID, now)
	}

	// PPV without a purchase.
	return false, nil
}
