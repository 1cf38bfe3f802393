package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/history"
	"github.com/mauv0809/ipo-watch/internal/models"
	"github.com/mauv0809/ipo-watch/internal/report"
	"github.com/mauv0809/ipo-watch/internal/views"
)

// Handler serves the history pages and JSON API.
type Handler struct {
	store  *history.Store
	logger *slog.Logger
}

func New(store *history.Store) *Handler {
	return &Handler{
		store:  store,
		logger: slog.Default().With(slog.String("component", "handlers")),
	}
}

// Response is the JSON envelope for errors and admin actions.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
	Elapsed string `json:"elapsed,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// DayResponse is the bucket of one day.
type DayResponse struct {
	Date  date.Date    `json:"date"`
	Count int          `json:"count"`
	IPOs  []models.IPO `json:"ipos"`
}

// MonthResponse is the concatenated buckets of one month.
type MonthResponse struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Count int          `json:"count"`
	IPOs  []models.IPO `json:"ipos"`
}

// Health handles GET /health
// Reports that the server is up.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Index handles GET /
// Shows the most recent bucket and links to every month on record.
func (h *Handler) Index(c echo.Context) error {
	ctx := c.Request().Context()

	latest, ok, err := h.store.Latest(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	ipos := []models.IPO{}
	if ok {
		if ipos, err = h.store.ByDate(ctx, latest); err != nil {
			return h.fail(c, err)
		}
	}
	months, err := h.store.Months(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	return Render(c, http.StatusOK, views.Index(latest, ipos, months, views.ServerPaths))
}

// Day handles GET /history/:date
func (h *Handler) Day(c echo.Context) error {
	day, err := date.Parse(c.Param("date"))
	if err != nil {
		return h.fail(c, err)
	}
	ipos, err := h.store.ByDate(c.Request().Context(), day)
	if err != nil {
		return h.fail(c, err)
	}
	return Render(c, http.StatusOK, views.Day(day, ipos, nil, nil, views.ServerPaths))
}

// Monthly handles GET /monthly/:year/:month
func (h *Handler) Monthly(c echo.Context) error {
	ym, err := yearMonthParams(c)
	if err != nil {
		return h.fail(c, err)
	}
	m, err := report.Build(c.Request().Context(), h.store, ym)
	if err != nil {
		return h.fail(c, err)
	}
	fragment, err := report.HTML(m)
	if err != nil {
		return h.fail(c, err)
	}
	return Render(c, http.StatusOK, views.MonthlyReport(m.Title(), fragment, m.Charts(), nil, views.ServerPaths))
}

// APIDates handles GET /api/dates
func (h *Handler) APIDates(c echo.Context) error {
	dates, err := h.store.Dates(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"dates": dates})
}

// APIMonths handles GET /api/months
func (h *Handler) APIMonths(c echo.Context) error {
	months, err := h.store.Months(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"months": months})
}

// APIDay handles GET /api/history/:date
func (h *Handler) APIDay(c echo.Context) error {
	day, err := date.Parse(c.Param("date"))
	if err != nil {
		return h.fail(c, err)
	}
	ipos, err := h.store.ByDate(c.Request().Context(), day)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, DayResponse{Date: day, Count: len(ipos), IPOs: ipos})
}

// APIMonth handles GET /api/history/:year/:month
func (h *Handler) APIMonth(c echo.Context) error {
	ym, err := yearMonthParams(c)
	if err != nil {
		return h.fail(c, err)
	}
	ipos, err := h.store.ByMonth(c.Request().Context(), ym.Year, int(ym.Month))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, MonthResponse{Year: ym.Year, Month: int(ym.Month), Count: len(ipos), IPOs: ipos})
}

// yearMonthParams reads the :year and :month path parameters.
func yearMonthParams(c echo.Context) (date.YearMonth, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return date.YearMonth{}, date.ErrInvalidMonth
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return date.YearMonth{}, date.ErrInvalidMonth
	}
	return date.NewYearMonth(year, month)
}

// fail maps malformed dates and months to 400 and everything else to 500.
func (h *Handler) fail(c echo.Context, err error) error {
	return failure(c, h.logger, err)
}

func failure(c echo.Context, logger *slog.Logger, err error) error {
	status := http.StatusInternalServerError
	if errors.Is(err, date.ErrInvalidDate) || errors.Is(err, date.ErrInvalidMonth) {
		status = http.StatusBadRequest
	} else {
		logger.Error("Request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
	}
	return c.JSON(status, Response{Success: false, Message: err.Error()})
}
