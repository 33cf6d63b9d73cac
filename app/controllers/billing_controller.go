package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/bank"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/database"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/entitlements"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/mail"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/subscription"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
)

func cardFromForm(c *fiber.Ctx) bank.Card {
	return bank.Card{
		Number:      c.FormValue("card_number"),
		ExpiryMonth: formInt(c, "expiry_month", 0),
		ExpiryYear:  formInt(c, "expiry_year", 0),
		CVC:         c.FormValue("cvc"),
	}
}

// chargeCard validates the card locally, then runs the bank round trip.
// The returned message is user-facing.
func chargeCard(c *fiber.Ctx, amount float64) (bank.Result, string) {
	card := cardFromForm(c)
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
			msg = "Платёж отклонён"
		}
		return res, msg
	}
	return res, ""
}

func recordPayment(amount float64, res bank.Result, purchaseID, subscriptionID *string, ok bool) *models.Payment {
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
	if ok {
		now := time.Now()
		payment.Status = models.PaymentStatusPaid
		payment.PaidAt = &now
	}
	if err := repository.GetGlobalRepositories().Payment.Create(payment); err != nil {
		log.Printf("Failed to record payment %s: %v", payment.TxnUUID, err)
	}
	return payment
}

// HandleSubscribe renders the plan picker and processes paid activation.
func HandleSubscribe(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	svc := subscription.NewServiceFromDB(database.GetDB())

	if c.Method() == fiber.MethodGet {
		overview, err := svc.GetOverview(uc.UserID, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "subscription service unavailable")
		}
		return c.Render("billing/subscribe", viewData(c, "Подписка", fiber.Map{
			"Overview": overview,
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	planCode := c.FormValue("plan")
	plan, err := svc.GetPlan(planCode)
	if err != nil {
		fm["message"] = "Тариф не найден"

		return flash.WithError(c, fm).Redirect("/subscribe")
	}

	extend := c.FormValue("extend") == "1"

	res, errMsg := chargeCard(c, plan.Price)
	if errMsg != "" {
		recordPayment(plan.Price, res, nil, nil, false)
		fm["message"] = errMsg

		return flash.WithError(c, fm).Redirect("/subscribe")
	}

	sub, err := svc.Activate(uc.UserID, planCode, extend, time.Now())
	if err != nil {
		fm["message"] = "Оплата прошла, но активация не удалась, обратитесь в поддержку"
		recordPayment(plan.Price, res, nil, nil, true)

		return flash.WithError(c, fm).Redirect("/subscribe")
	}
	recordPayment(plan.Price, res, nil, &sub.ID, true)

	if email := uc.Email; email != "" {
		go mail.SendSubscriptionReceipt(email, mail.SubscriptionReceipt{
			PlanName:      plan.Name,
			Amount:        plan.Price,
			TransactionID: res.TransactionID,
			ExpiresAt:     sub.ExpiresAt,
		})
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Подписка активна",
	}

	return flash.WithSuccess(c, fm).Redirect("/profile")
}

// HandleSubscriptionCancel cancels within the 14-day window.
func HandleSubscriptionCancel(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	svc := subscription.NewServiceFromDB(database.GetDB())

	fm := fiber.Map{
		"type": "error",
	}

	_, err := svc.Cancel(uc.UserID, c.FormValue("subscription_id"), time.Now())
	switch err {
	case nil:
		fm = fiber.Map{
			"type":    "success",
			"message": "Подписка отменена",
		}
		return flash.WithSuccess(c, fm).Redirect("/profile")
	case subscription.ErrNotCancellable:
		fm["message"] = "Срок отмены истёк: отмена возможна в течение 14 дней после оформления"
	case subscription.ErrSubscriptionNotFound:
		fm["message"] = "Активная подписка не найдена"
	default:
		fm["message"] = "Не удалось отменить подписку"
	}

	return flash.WithError(c, fm).Redirect("/profile")
}

// HandlePurchase sells permanent access to a single title.
func HandlePurchase(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	content, err := repos.Content.GetByID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	if entitlements.ClassifyContent(content) != entitlements.AccessPPV {
		return fiber.ErrBadRequest
	}

	if c.Method() == fiber.MethodGet {
		return c.Render("billing/purchase", viewData(c, "Покупка", fiber.Map{
			"Content": content,
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	if has, err := repos.Purchase.Has(uc.UserID, content.ID); err == nil && has {
		fm = fiber.Map{
			"type":    "success",
			"message": "Этот фильм уже куплен",
		}
		return flash.WithSuccess(c, fm).Redirect("/content/" + content.ID)
	}

	res, errMsg := chargeCard(c, content.Price)
	if errMsg != "" {
		recordPayment(content.Price, res, nil, nil, false)
		fm["message"] = errMsg

		return flash.WithError(c, fm).Redirect("/buy/" + content.ID)
	}

	purchase := &models.Purchase{UserID: uc.UserID, ContentID: content.ID}
	if err := repos.Purchase.Create(purchase); err != nil {
		fm["message"] = "Оплата прошла, но покупка не сохранилась, обратитесь в поддержку"
		recordPayment(content.Price, res, nil, nil, true)

		return flash.WithError(c, fm).Redirect("/content/" + content.ID)
	}
	recordPayment(content.Price, res, &purchase.ID, nil, true)

	if email := uc.Email; email != "" {
		go mail.SendPurchaseReceipt(email, mail.PurchaseReceipt{
			Title:         content.Title,
			Amount:        content.Price,
			TransactionID: res.TransactionID,
		})
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Покупка оформлена, приятного просмотра!",
	}

	return flash.WithSuccess(c, fm).Redirect("/content/" + content.ID)
}
