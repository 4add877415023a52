package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation-web/internal/apiclient"
	"github.com/iliyamo/table-reservation-web/internal/config"
	"github.com/iliyamo/table-reservation-web/internal/metrics"
	"github.com/iliyamo/table-reservation-web/internal/queue"
)

// Publisher sends action events to the broker.  A nil Publisher disables
// publishing.
type Publisher interface {
	PublishAction(ctx context.Context, ev queue.ReservationActionEvent) error
}

const publishTimeout = 5 * time.Second

// publish forwards ev when a publisher is configured.  Failures are logged
// and never reach the visitor.
func publish(c echo.Context, p Publisher, ev queue.ReservationActionEvent) {
	if p == nil {
		return
	}
	if ev.OccurredAt == "" {
		ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), publishTimeout)
	defer cancel()
	if err := p.PublishAction(ctx, ev); err != nil {
		c.Logger().Warnf("publish %s #%d: %v", ev.Action, ev.ReservationID, err)
	}
}

// parseID reads a positive numeric path parameter.  Anything else is a 404
// since no such page exists.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

// outcome maps a backend error to its metrics label.
func outcome(err error) string {
	var apiErr *apiclient.APIError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &apiErr):
		return metrics.OutcomeAPIError
	case errors.Is(err, apiclient.ErrUnreachable):
		return metrics.OutcomeUnreachable
	}
	return metrics.OutcomeInvalid
}

// confirmPage is the data of the confirmation page that replaces the
// browser's blocking confirm dialog.
type confirmPage struct {
	Title   string
	Site    config.Site
	Message string
	Action  string
	Label   string
	Back    string
}
