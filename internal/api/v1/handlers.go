package apiv1

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Lomoncivici/Kyrsach4/app/controllers"
	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/bank"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/database"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/entitlements"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/mail"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/subscription"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/token"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
)

// APIServer implements the JSON API. Every response carries an "ok" flag;
// payloads ride alongside it.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

func ok(c *fiber.Ctx, data fiber.Map) error {
	out := fiber.Map{"ok": true}
	for k, v := range data {
		out[k] = v
	}
	return c.JSON(out)
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"ok": false, "error": msg})
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"ping": "pong"})
}

// PostAuthToken exchanges credentials for a bearer token. The identifier
// field accepts login, email or phone, same as the web login.
func (s *APIServer) PostAuthToken(c *fiber.Ctx) error {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.ResolveIdentifier(req.Identifier)
	if err != nil || !user.IsActive || !user.CheckPassword(req.Password) {
		return fail(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	signed, err := token.Issue(user.ID, user.Login, time.Now())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "token issue failed")
	}

	return ok(c, fiber.Map{"token": signed, "login": user.Login})
}

// GetCatalog lists content with the same filters as the web catalog.
func (s *APIServer) GetCatalog(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 24)
	if limit < 1 || limit > 100 {
		limit = 24
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	items, total, err := repository.GetGlobalRepositories().Content.List(repository.ContentFilter{
		Type:    c.Query("type"),
		GenreID: c.Query("genre"),
		Query:   c.Query("q"),
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "catalog unavailable")
	}

	return ok(c, fiber.Map{"items": items, "total": total})
}

// GetContent returns one catalog entry with its access mode and rating.
func (s *APIServer) GetContent(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	content, err := repos.Content.GetDetail(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, "not found")
	}

	avg, _ := repos.Interaction.AverageRating(content.ID)
	uc := usercontext.GetUserContext(c)

	canWatch := false
	if resolver := entitlements.NewResolverFromDB(database.GetDB()); resolver != nil {
		canWatch, _ = resolver.CanWatch(uc.UserID, content, time.Now())
	}

	// Video assets stay out of the payload until access is confirmed;
	// the source endpoints re-check on every request anyway.
	if !canWatch {
		content.Video = nil
		for i := range content.Seasons {
			for j := range content.Seasons[i].Episodes {
				content.Seasons[i].Episodes[j].Video = nil
			}
		}
	}

	return ok(c, fiber.Map{
		"content":     content,
		"access_mode": string(entitlements.ClassifyContent(content)),
		"avg_rating":  avg,
		"can_watch":   canWatch,
	})
}

// GetCanWatch reports whether the caller may stream the title right now.
// Anonymous callers get an answer too: true for free content, false otherwise.
func (s *APIServer) GetCanWatch(c *fiber.Ctx) error {
	content, err := repository.GetGlobalRepositories().Content.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, "not found")
	}

	uc := usercontext.GetUserContext(c)
	canWatch := false
	if resolver := entitlements.NewResolverFromDB(database.GetDB()); resolver != nil {
		canWatch, _ = resolver.CanWatch(uc.UserID, content, time.Now())
	}

	return ok(c, fiber.Map{
		"can_watch":   canWatch,
		"access_mode": string(entitlements.ClassifyContent(content)),
	})
}

// GetSeriesTree returns the season and episode layout of a series. Episode
// video assets are withheld until the caller's entitlement checks out.
func (s *APIServer) GetSeriesTree(c *fiber.Ctx) error {
	content, err := repository.GetGlobalRepositories().Content.GetDetail(c.Params("id"))
	if err != nil || content.Type != models.ContentTypeSeries {
		return fail(c, fiber.StatusNotFound, "not found")
	}

	uc := usercontext.GetUserContext(c)
	canWatch := false
	if resolver := entitlements.NewResolverFromDB(database.GetDB()); resolver != nil {
		canWatch, _ = resolver.CanWatch(uc.UserID, content, time.Now())
	}
	if !canWatch {
		for i := range content.Seasons {
			for j := range content.Seasons[i].Episodes {
				content.Seasons[i].Episodes[j].Video = nil
			}
		}
	}

	return ok(c, fiber.Map{"seasons": content.Seasons})
}

// GetContentSource delegates to the web access-checked source resolution.
func (s *APIServer) GetContentSource(c *fiber.Ctx) error {
	return controllers.HandleContentSource(c)
}

// GetEpisodeSource delegates to the web access-checked episode resolution.
func (s *APIServer) GetEpisodeSource(c *fiber.Ctx) error {
	return controllers.HandleEpisodeSource(c)
}

// GetMe returns the authenticated account.
func (s *APIServer) GetMe(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	user, err := repository.GetGlobalRepositories().User.GetByID(uc.UserID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "account not found")
	}
	return ok(c, fiber.Map{"user": user})
}

// GetMySubscriptions returns the subscription overview with display status
// resolved per row.
func (s *APIServer) GetMySubscriptions(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	now := time.Now()

	svc := subscription.NewServiceFromDB(database.GetDB())
	overview, err := svc.GetOverview(uc.UserID, now)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "subscription service unavailable")
	}

	type subView struct {
		models.UserSubscription
		ActualStatus string `json:"actual_status"`
		DaysLeft     int    `json:"days_left"`
	}
	history := make([]subView, 0, len(overview.All))
	for _, sub := range overview.All {
		history = append(history, subView{
			UserSubscription: sub,
			ActualStatus:     sub.ActualStatusAt(now),
			DaysLeft:         sub.DaysLeftAt(now),
		})
	}

	data := fiber.Map{"subscriptions": history, "plans": overview.Plans}
	if overview.Current != nil {
		data["current"] = subView{
			UserSubscription: *overview.Current,
			ActualStatus:     overview.Current.ActualStatusAt(now),
			DaysLeft:         overview.Current.DaysLeftAt(now),
		}
	}
	return ok(c, data)
}

// PostSubscriptionCancel cancels within the 14-day window.
func (s *APIServer) PostSubscriptionCancel(c *fiber.Ctx) error {
	var req struct {
		SubscriptionID string `json:"subscription_id"`
	}
	_ = c.BodyParser(&req)

	uc := usercontext.GetUserContext(c)
	svc := subscription.NewServiceFromDB(database.GetDB())

	sub, err := svc.Cancel(uc.UserID, req.SubscriptionID, time.Now())
	switch err {
	case nil:
		return ok(c, fiber.Map{"subscription": sub})
	case subscription.ErrNotCancellable:
		return fail(c, fiber.StatusConflict, "cancellation window passed")
	case subscription.ErrSubscriptionNotFound:
		return fail(c, fiber.StatusNotFound, "no active subscription")
	default:
		return fail(c, fiber.StatusInternalServerError, "cancel failed")
	}
}

// PostRating upserts the caller's rating and returns the new average.
func (s *APIServer) PostRating(c *fiber.Ctx) error {
	var req struct {
		Value   int    `json:"value"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil || req.Value == 0 {
		return fail(c, fiber.StatusBadRequest, "bad value")
	}

	uc := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()
	contentID := c.Params("id")

	content, err := repos.Content.GetByID(contentID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	if resolver := entitlements.NewResolverFromDB(database.GetDB()); resolver != nil {
		if canWatch, _ := resolver.CanWatch(uc.UserID, content, time.Now()); !canWatch {
			return fail(c, fiber.StatusForbidden, "no access")
		}
	}

	if err := repos.Interaction.UpsertRating(uc.UserID, contentID, req.Value, req.Comment); err != nil {
		return fail(c, fiber.StatusInternalServerError, "rating failed")
	}
	avg, _ := repos.Interaction.AverageRating(contentID)
	return ok(c, fiber.Map{"avg": avg})
}

// PostFavoriteToggle flips favorite membership.
func (s *APIServer) PostFavoriteToggle(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	inList, err := repository.GetGlobalRepositories().Interaction.ToggleFavorite(uc.UserID, c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "toggle failed")
	}
	return ok(c, fiber.Map{"in_list": inList})
}

// PostWatchlistToggle flips watchlist membership.
func (s *APIServer) PostWatchlistToggle(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	inList, err := repository.GetGlobalRepositories().Interaction.ToggleWatchlist(uc.UserID, c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "toggle failed")
	}
	return ok(c, fiber.Map{"in_list": inList})
}

// PostProgress stores a playback position.
func (s *APIServer) PostProgress(c *fiber.Ctx) error {
	var req struct {
		SeasonNum   int  `json:"season_num"`
		EpisodeNum  int  `json:"episode_num"`
		PositionSec int  `json:"position_sec"`
		DurationSec int  `json:"duration_sec"`
		Completed   bool `json:"completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if req.PositionSec < 0 {
		req.PositionSec = 0
	}

	uc := usercontext.GetUserContext(c)
	progress := &models.WatchProgress{
		UserID:      uc.UserID,
		ContentID:   c.Params("id"),
		SeasonNum:   req.SeasonNum,
		EpisodeNum:  req.EpisodeNum,
		PositionSec: req.PositionSec,
		DurationSec: req.DurationSec,
		Completed:   req.Completed,
	}
	if err := repository.GetGlobalRepositories().Interaction.UpsertProgress(progress); err != nil {
		return fail(c, fiber.StatusInternalServerError, "progress save failed")
	}
	return ok(c, fiber.Map{"completed": progress.Completed})
}

// GetMyPurchases lists the caller's pay-per-view purchases.
func (s *APIServer) GetMyPurchases(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	purchases, err := repository.GetGlobalRepositories().Purchase.ListByUser(uc.UserID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "listing failed")
	}
	return ok(c, fiber.Map{"purchases": purchases})
}

// GetMyFavorites lists the caller's favorites.
func (s *APIServer) GetMyFavorites(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	favorites, err := repository.GetGlobalRepositories().Interaction.ListFavorites(uc.UserID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "listing failed")
	}
	return ok(c, fiber.Map{"favorites": favorites})
}

// GetMyWatchlist lists the caller's watchlist.
func (s *APIServer) GetMyWatchlist(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	entries, err := repository.GetGlobalRepositories().Interaction.ListWatchlist(uc.UserID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "listing failed")
	}
	return ok(c, fiber.Map{"watchlist": entries})
}

// GetMyRatings lists the caller's ratings with the rated titles preloaded.
func (s *APIServer) GetMyRatings(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	ratings, err := repository.GetGlobalRepositories().Interaction.ListUserRatings(uc.UserID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "listing failed")
	}
	return ok(c, fiber.Map{"ratings": ratings})
}

// GetMyHistory lists watch history, most recent first.
func (s *APIServer) GetMyHistory(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	history, err := repository.GetGlobalRepositories().Interaction.ListHistory(uc.UserID, c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "listing failed")
	}
	return ok(c, fiber.Map{"history": history})
}

// GetMyContinueWatching lists the most recent unfinished item per content.
func (s *APIServer) GetMyContinueWatching(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	rows, err := repository.GetGlobalRepositories().Interaction.ListContinueWatching(uc.UserID, c.QueryInt("limit", 12))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "listing failed")
	}
	return ok(c, fiber.Map{"items": rows})
}

// GetHome bundles the landing sections into one call: fresh movies,
// fresh series, genres and (for authenticated callers) continue watching.
func (s *APIServer) GetHome(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	movies, _, err := repos.Content.List(repository.ContentFilter{Type: models.ContentTypeMovie, Limit: 12})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "catalog unavailable")
	}
	series, _, err := repos.Content.List(repository.ContentFilter{Type: models.ContentTypeSeries, Limit: 12})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "catalog unavailable")
	}
	genres, _ := repos.Content.ListGenres()

	sections, err := repos.Content.ListGenreSections(5, 8)
	if err != nil {
		log.Printf("Failed to load genre sections: %v", err)
		sections = nil
	}

	data := fiber.Map{
		"movies":         movies,
		"series":         series,
		"genres":         genres,
		"genre_sections": sections,
	}
	if uc := usercontext.GetUserContext(c); uc.IsLoggedIn {
		if rows, err := repos.Interaction.ListContinueWatching(uc.UserID, 12); err == nil {
			data["continue_watching"] = rows
		}
	}
	return ok(c, data)
}

// GetProgress returns the stored playback position for one title. Season
// and episode default to zero, which addresses movie progress.
func (s *APIServer) GetProgress(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	progress, err := repository.GetGlobalRepositories().Interaction.GetProgress(
		uc.UserID, c.Params("id"), c.QueryInt("season", 0), c.QueryInt("episode", 0))
	if err != nil {
		return ok(c, fiber.Map{"progress": nil})
	}
	return ok(c, fiber.Map{"progress": progress})
}

// GetFavoriteStatus reports favorite membership for one title.
func (s *APIServer) GetFavoriteStatus(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	inList, err := repository.GetGlobalRepositories().Interaction.IsFavorite(uc.UserID, c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "lookup failed")
	}
	return ok(c, fiber.Map{"in_list": inList})
}

// GetWatchlistStatus reports watchlist membership for one title.
func (s *APIServer) GetWatchlistStatus(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	inList, err := repository.GetGlobalRepositories().Interaction.InWatchlist(uc.UserID, c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "lookup failed")
	}
	return ok(c, fiber.Map{"in_list": inList})
}

// GetMyPayments lists the caller's payments, purchases and subscriptions alike.
func (s *APIServer) GetMyPayments(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	payments, err := repository.GetGlobalRepositories().Payment.ListByUser(uc.UserID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "listing failed")
	}
	return ok(c, fiber.Map{"payments": payments})
}

type cardPayload struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVC         string `json:"cvc"`
}

func (p cardPayload) card() bank.Card {
	return bank.Card{
		Number:      p.CardNumber,
		ExpiryMonth: p.ExpiryMonth,
		ExpiryYear:  p.ExpiryYear,
		CVC:         p.CVC,
	}
}

// chargeCard validates the card locally, then runs the bank round trip.
// The returned message is client-facing.
func chargeCard(c *fiber.Ctx, card bank.Card, amount float64) (bank.Result, string) {
	if err := bank.ValidateCard(card, time.Now()); err != nil {
		return bank.Result{}, err.Error()
	}

	client := bank.NewClientFromEnv()
	res := client.ProcessPayment(c.Context(), card, amount)
	if !res.Success {
		msg := res.Error
		if res.Hint != "" {
			msg = fmt.Sprintf("%s (%s)", msg, res.Hint)
		}
		if msg == "" {
			msg = "payment declined"
		}
		return res, msg
	}
	return res, ""
}

func recordPayment(amount float64, res bank.Result, purchaseID, subscriptionID *string, paid bool) *models.Payment {
	payment := &models.Payment{
		TxnUUID:        res.TransactionID,
		Amount:         amount,
		Status:         models.PaymentStatusFailed,
		PurchaseID:     purchaseID,
		SubscriptionID: subscriptionID,
	}
	if payment.TxnUUID == "" {
		payment.TxnUUID = uuid.NewString()
	}
	if paid {
		now := time.Now()
		payment.Status = models.PaymentStatusPaid
		payment.PaidAt = &now
	}
	if err := repository.GetGlobalRepositories().Payment.Create(payment); err != nil {
		log.Printf("Failed to record payment %s: %v", payment.TxnUUID, err)
	}
	return payment
}

// PostPurchase sells permanent access to one pay-per-view title.
func (s *APIServer) PostPurchase(c *fiber.Ctx) error {
	var req cardPayload
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}

	uc := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	content, err := repos.Content.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	if entitlements.ClassifyContent(content) != entitlements.AccessPPV {
		return fail(c, fiber.StatusBadRequest, "title is not sold separately")
	}
	if has, err := repos.Purchase.Has(uc.UserID, content.ID); err == nil && has {
		return fail(c, fiber.StatusConflict, "already purchased")
	}

	res, errMsg := chargeCard(c, req.card(), content.Price)
	if errMsg != "" {
		recordPayment(content.Price, res, nil, nil, false)
		return fail(c, fiber.StatusPaymentRequired, errMsg)
	}

	purchase := &models.Purchase{UserID: uc.UserID, ContentID: content.ID}
	if err := repos.Purchase.Create(purchase); err != nil {
		recordPayment(content.Price, res, nil, nil, true)
		return fail(c, fiber.StatusInternalServerError, "payment captured but purchase failed, contact support")
	}
	payment := recordPayment(content.Price, res, &purchase.ID, nil, true)

	if email := uc.Email; email != "" {
		go mail.SendPurchaseReceipt(email, mail.PurchaseReceipt{
			Title:         content.Title,
			Amount:        content.Price,
			TransactionID: res.TransactionID,
		})
	}

	return ok(c, fiber.Map{"purchase": purchase, "payment": payment})
}

// PostSubscribe activates a paid plan. With "extend" set the new period is
// chained after the current one instead of starting now.
func (s *APIServer) PostSubscribe(c *fiber.Ctx) error {
	var req struct {
		Plan   string `json:"plan"`
		Extend bool   `json:"extend"`
		cardPayload
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}

	uc := usercontext.GetUserContext(c)
	svc := subscription.NewServiceFromDB(database.GetDB())

	plan, err := svc.GetPlan(req.Plan)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "plan not found")
	}

	res, errMsg := chargeCard(c, req.card(), plan.Price)
	if errMsg != "" {
		recordPayment(plan.Price, res, nil, nil, false)
		return fail(c, fiber.StatusPaymentRequired, errMsg)
	}

	sub, err := svc.Activate(uc.UserID, req.Plan, req.Extend, time.Now())
	if err != nil {
		recordPayment(plan.Price, res, nil, nil, true)
		return fail(c, fiber.StatusInternalServerError, "payment captured but activation failed, contact support")
	}
	payment := recordPayment(plan.Price, res, nil, &sub.ID, true)

	if email := uc.Email; email != "" {
		go mail.SendSubscriptionReceipt(email, mail.SubscriptionReceipt{
			PlanName:      plan.Name,
			Amount:        plan.Price,
			TransactionID: res.TransactionID,
			ExpiresAt:     sub.ExpiresAt,
		})
	}

	return ok(c, fiber.Map{"subscription": sub, "payment": payment})
}
