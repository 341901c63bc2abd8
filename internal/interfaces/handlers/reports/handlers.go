package reports

import (
	"time"

	reportsvc "roomstay-backend/internal/application/reports"
	"roomstay-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *reportsvc.Service
}

// Kpis returns the dashboard headline counts.
func (h *Handlers) Kpis(c *fiber.Ctx) error {
	kpis, err := h.Service.Kpis(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "KPIs retrieved successfully", kpis, nil)
}

// Series returns the daily count series for an entity.
// Query: entity, from, to (YYYY-MM-DD), days.
func (h *Handlers) Series(c *fiber.Ctx) error {
	q := reportsvc.SeriesQuery{
		Entity: c.Query("entity", reportsvc.EntityListings),
		Days:   c.QueryInt("days", 0),
	}
	var err error
	if q.From, err = parseDate(c.Query("from")); err != nil {
		return response.Error(c, "Invalid from date", fiber.StatusBadRequest, nil)
	}
	if q.To, err = parseDate(c.Query("to")); err != nil {
		return response.Error(c, "Invalid to date", fiber.StatusBadRequest, nil)
	}
	points, err := h.Service.Series(c.Context(), q)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Series retrieved successfully", points, fiber.Map{"count": len(points)})
}

// Monthly returns the monthly rollup for an entity.
// Query: entity, from, to (YYYY-MM-DD), months.
func (h *Handlers) Monthly(c *fiber.Ctx) error {
	q := reportsvc.MonthlyQuery{
		Entity: c.Query("entity", reportsvc.EntityListings),
		Months: c.QueryInt("months", 0),
	}
	var err error
	if q.From, err = parseDate(c.Query("from")); err != nil {
		return response.Error(c, "Invalid from date", fiber.StatusBadRequest, nil)
	}
	if q.To, err = parseDate(c.Query("to")); err != nil {
		return response.Error(c, "Invalid to date", fiber.StatusBadRequest, nil)
	}
	points, err := h.Service.Monthly(c.Context(), q)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Monthly rollup retrieved successfully", points, fiber.Map{"count": len(points)})
}

// ExportCSV streams the month-scoped CSV report as an attachment.
// Query: type, year, month (defaults to the current month).
func (h *Handlers) ExportCSV(c *fiber.Ctx) error {
	now := time.Now().UTC()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return response.Error(c, "Invalid month", fiber.StatusBadRequest, nil)
	}
	export, err := h.Service.ExportCSV(c.Context(), c.Query("type", reportsvc.ReportOverview), year, month)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.Send(export.Data)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
