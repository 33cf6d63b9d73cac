package repository

import (
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByLogin(login string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	ResolveIdentifier(identifier string) (*models.User, error)
	LoginExists(login string) (bool, error)
	NextFreeLogin(base string) (string, error)
	Update(user *models.User) error
	Delete(id string) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
	GetDailyRegistrations(startDate, endDate time.Time) ([]DailyCount, error)
}

// DailyCount is one analytics row: rows grouped by calendar day.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

// ContentRepository defines the interface for catalog database operations
type ContentRepository interface {
	Create(content *models.Content) error
	GetByID(id string) (*models.Content, error)
	GetDetail(id string) (*models.Content, error)
	Update(content *models.Content) error
	Delete(id string) error
	List(filter ContentFilter) ([]models.Content, int64, error)
	Search(query string, limit int) ([]models.Content, error)

	ListGenres() ([]models.Genre, error)
	ListGenreSections(maxGenres, perGenre int) ([]GenreSection, error)
	CreateGenre(genre *models.Genre) error
	DeleteGenre(id string) error
	SetGenres(contentID string, genreIDs []string) error

	GetSeason(contentID string, seasonNum int) (*models.Season, error)
	CreateSeason(season *models.Season) error
	DeleteSeason(id string) error
	GetEpisode(contentID string, seasonNum, episodeNum int) (*models.Episode, error)
	CreateEpisode(episode *models.Episode) error
	UpdateEpisode(episode *models.Episode) error
	DeleteEpisode(id string) error

	CreateMediaAsset(asset *models.MediaAsset) error
	GetMediaAssetByURL(url string) (*models.MediaAsset, error)
	ListMediaAssets(kind string) ([]models.MediaAsset, error)
}

// GenreSection is one landing-page row: a genre with a handful of its
// freshest titles.
type GenreSection struct {
	Genre models.Genre     `json:"genre"`
	Items []models.Content `json:"items"`
}

// ContentFilter narrows catalog listings.
type ContentFilter struct {
	Type    string
	GenreID string
	Query   string
	Offset  int
	Limit   int
}

// PurchaseRepository defines the interface for pay-per-view purchases
type PurchaseRepository interface {
	Create(purchase *models.Purchase) error
	Has(userID, contentID string) (bool, error)
	ListByUser(userID string) ([]models.Purchase, error)
	List(offset, limit int) ([]models.Purchase, error)
	Count() (int64, error)
	Delete(id string) error
}

// PaymentRepository defines the interface for payment records and analytics
type PaymentRepository interface {
	Create(payment *models.Payment) error
	Update(payment *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	GetByTxnUUID(txn string) (*models.Payment, error)
	List(offset, limit int) ([]models.Payment, error)
	ListByUser(userID string) ([]models.Payment, error)
	Count() (int64, error)
	GetDailyStats(startDate, endDate time.Time) ([]DailyPaymentStats, error)
	SumPaidSince(since time.Time) (float64, error)
}

// DailyPaymentStats is one analytics row: payments grouped by calendar day.
type DailyPaymentStats struct {
	Date     time.Time `json:"date"`
	Payments int64     `json:"payments"`
	Paid     int64     `json:"paid"`
	Revenue  float64   `json:"revenue"`
}

// InteractionRepository covers ratings, favorites, watchlist and progress
type InteractionRepository interface {
	UpsertRating(userID, contentID string, rating int, comment string) error
	AverageRating(contentID string) (float64, error)
	GetUserRating(userID, contentID string) (*models.ContentReview, error)
	ListReviews(contentID string, limit int) ([]models.ContentReview, error)
	ListUserRatings(userID string) ([]models.ContentReview, error)

	ToggleFavorite(userID, contentID string) (bool, error)
	IsFavorite(userID, contentID string) (bool, error)
	ListFavorites(userID string) ([]models.Favorite, error)

	ToggleWatchlist(userID, contentID string) (bool, error)
	InWatchlist(userID, contentID string) (bool, error)
	ListWatchlist(userID string) ([]models.WatchlistEntry, error)

	UpsertProgress(progress *models.WatchProgress) error
	GetProgress(userID, contentID string, seasonNum, episodeNum int) (*models.WatchProgress, error)
	ListContinueWatching(userID string, limit int) ([]models.WatchProgress, error)
	ListHistory(userID string, limit int) ([]models.WatchProgress, error)
	ListRecentActivity(limit int) ([]models.WatchProgress, error)
}

// EmployeeRepository defines the interface for back-office accounts
type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByID(id string) (*models.Employee, error)
	GetActiveByEmail(email string) (*models.Employee, error)
	Update(employee *models.Employee) error
	Delete(id string) error
	List() ([]models.Employee, error)
	ListRoles() ([]models.Role, error)
	SetRoles(employeeID string, roleCodes []string) error
}

// SubscriptionAdminRepository covers the back-office side of subscriptions;
// the customer-facing lifecycle lives in internal/pkg/subscription.
type SubscriptionAdminRepository interface {
	ListPlans() ([]models.SubscriptionPlan, error)
	GetPlan(id string) (*models.SubscriptionPlan, error)
	CreatePlan(plan *models.SubscriptionPlan) error
	UpdatePlan(plan *models.SubscriptionPlan) error
	DeletePlan(id string) error

	ListUserSubscriptions(userID string) ([]models.UserSubscription, error)
	List(offset, limit int) ([]models.UserSubscription, error)
	Count() (int64, error)
	Get(id string) (*models.UserSubscription, error)
	Update(sub *models.UserSubscription) error
	Delete(id string) error
}

// Repositories holds all repository instances
type Repositories struct {
	User              UserRepository
	Content           ContentRepository
	Purchase          PurchaseRepository
	Payment           PaymentRepository
	Interaction       InteractionRepository
	Employee          EmployeeRepository
	SubscriptionAdmin SubscriptionAdminRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:              NewUserRepository(db),
		Content:           NewContentRepository(db),
		Purchase:          NewPurchaseRepository(db),
		Payment:           NewPaymentRepository(db),
		Interaction:       NewInteractionRepository(db),
		Employee:          NewEmployeeRepository(db),
		SubscriptionAdmin: NewSubscriptionAdminRepository(db),
	}
}
