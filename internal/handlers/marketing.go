package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tintaeletras/bookshop/internal/events"
	"github.com/tintaeletras/bookshop/internal/logging"
	"github.com/tintaeletras/bookshop/internal/models"
)

// MarketingHandler covers the two collectors: newsletter subscriptions and
// WhatsApp opt-in contacts. Delivery of either channel is out of scope.
type MarketingHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *MarketingHandler) CreateSubscription(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "marketing.create_subscription")

	var req struct {
		Email string  `json:"email"`
		Name  *string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("create_subscription_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !validEmail(req.Email) {
		return echo.NewHTTPError(http.StatusBadRequest, "email is not a valid email")
	}

	var existing models.Subscription
	err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	switch {
	case err == nil:
		if existing.Active {
			// Already subscribed, nothing to change.
			return c.JSON(http.StatusOK, existing)
		}
		existing.Active = true
		if req.Name != nil {
			existing.Name = req.Name
		}
		existing.SubscribedAt = time.Now().UTC()
		existing.UnsubscribedAt = nil
		if err := h.DB.WithContext(ctx).Save(&existing).Error; err != nil {
			l.Error("create_subscription_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot reactivate subscription")
		}
		publish(c, h.Producer, events.TopicMarketingEvents, existing.Email, events.EventSubscribed, map[string]any{
			"subscription_id": existing.ID,
			"reactivated":     true,
		})
		l.Info("subscription_reactivated", "subscription_id", existing.ID)
		return c.JSON(http.StatusOK, existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		l.Error("create_subscription_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot check subscription")
	}

	sub := models.Subscription{Email: req.Email, Name: req.Name, Active: true}
	if err := h.DB.WithContext(ctx).Create(&sub).Error; err != nil {
		if isUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("create_subscription_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create subscription")
	}

	publish(c, h.Producer, events.TopicMarketingEvents, sub.Email, events.EventSubscribed, map[string]any{
		"subscription_id": sub.ID,
		"reactivated":     false,
	})

	l.Info("create_subscription_success", "subscription_id", sub.ID)
	return c.JSON(http.StatusCreated, sub)
}

func (h *MarketingHandler) GetSubscriptions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "marketing.get_subscriptions")

	activeOnly, err := boolQuery(c, "active_only")
	if err != nil {
		return err
	}

	q := h.DB.WithContext(ctx).Model(&models.Subscription{})
	if activeOnly == nil || *activeOnly {
		q = q.Where("active = ?", true)
	}

	var subs []models.Subscription
	if err := q.Find(&subs).Error; err != nil {
		l.Error("get_subscriptions_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list subscriptions")
	}
	return c.JSON(http.StatusOK, subs)
}

func (h *MarketingHandler) Unsubscribe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "marketing.unsubscribe")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("unsubscribe_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !validEmail(req.Email) {
		return echo.NewHTTPError(http.StatusBadRequest, "email is not a valid email")
	}

	var sub models.Subscription
	if err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no subscription for "+req.Email)
		}
		l.Error("unsubscribe_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch subscription")
	}

	now := time.Now().UTC()
	sub.Active = false
	sub.UnsubscribedAt = &now
	if err := h.DB.WithContext(ctx).Save(&sub).Error; err != nil {
		l.Error("unsubscribe_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot unsubscribe")
	}

	publish(c, h.Producer, events.TopicMarketingEvents, sub.Email, events.EventUnsubscribed, map[string]any{
		"subscription_id": sub.ID,
	})

	l.Info("unsubscribe_success", "subscription_id", sub.ID)
	return c.JSON(http.StatusOK, sub)
}

func (h *MarketingHandler) CreateWhatsappContact(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "marketing.create_whatsapp_contact")

	var req struct {
		Name  string  `json:"name"`
		Phone string  `json:"phone"`
		Notes *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("create_whatsapp_contact_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and phone are required")
	}

	contact := models.WhatsappContact{Name: req.Name, Phone: req.Phone, Notes: req.Notes, Active: true}
	if err := h.DB.WithContext(ctx).Create(&contact).Error; err != nil {
		l.Error("create_whatsapp_contact_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create contact")
	}

	publish(c, h.Producer, events.TopicMarketingEvents, contact.Phone, events.EventWhatsappOptIn, map[string]any{
		"contact_id": contact.ID,
	})

	l.Info("create_whatsapp_contact_success", "contact_id", contact.ID)
	return c.JSON(http.StatusCreated, contact)
}

func (h *MarketingHandler) GetWhatsappContacts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "marketing.get_whatsapp_contacts")

	activeOnly, err := boolQuery(c, "active_only")
	if err != nil {
		return err
	}

	q := h.DB.WithContext(ctx).Model(&models.WhatsappContact{})
	if activeOnly == nil || *activeOnly {
		q = q.Where("active = ?", true)
	}

	var contacts []models.WhatsappContact
	if err := q.Order("created_at DESC").Find(&contacts).Error; err != nil {
		l.Error("get_whatsapp_contacts_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list contacts")
	}
	return c.JSON(http.StatusOK, contacts)
}

func (h *MarketingHandler) DeactivateWhatsappContact(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "marketing.deactivate_whatsapp_contact")

	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var contact models.WhatsappContact
	if err := h.DB.WithContext(ctx).First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("whatsapp contact with id %d not found", id))
		}
		l.Error("deactivate_whatsapp_contact_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch contact")
	}

	contact.Active = false
	if err := h.DB.WithContext(ctx).Save(&contact).Error; err != nil {
		l.Error("deactivate_whatsapp_contact_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot deactivate contact")
	}

	publish(c, h.Producer, events.TopicMarketingEvents, contact.Phone, events.EventWhatsappOptOut, map[string]any{
		"contact_id": contact.ID,
	})

	l.Info("deactivate_whatsapp_contact_success", "contact_id", contact.ID)
	return c.JSON(http.StatusOK, contact)
}
