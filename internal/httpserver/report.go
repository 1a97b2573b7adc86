package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jfuenzalida/restaurante-backend/internal/logging"
	"github.com/jfuenzalida/restaurante-backend/internal/service"
)

const dateLayout = "2006-01-02"

type ReportHTTP struct {
	Svc *service.ReportService
}

func (h *ReportHTTP) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "report.stats")

	from, err := parseDate(c.QueryParam("start_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
	}
	to, err := parseDate(c.QueryParam("end_date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
	}

	stats, err := h.Svc.Stats(ctx, from, to)
	if err != nil {
		l.Error("stats_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, stats)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
