package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tintaeletras/bookshop/internal/events"
)

// isUniqueViolation reports whether the store rejected a write because of a
// uniqueness constraint. The sqlite test driver does not translate errors,
// hence the message fallback.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func intParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is not a valid id")
	}
	return uint(v), nil
}

func intQuery(c echo.Context, name string) (*int, error) {
	s := c.QueryParam(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" is not an integer")
	}
	return &v, nil
}

func boolQuery(c echo.Context, name string) (*bool, error) {
	s := c.QueryParam(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" is not a boolean")
	}
	return &v, nil
}

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// publish sends a domain event after a successful write. Delivery is best
// effort: a missing producer or a broker error never fails the request.
func publish(c echo.Context, p *events.Producer, topic, key, eventType string, payload any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, eventType, payload); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
