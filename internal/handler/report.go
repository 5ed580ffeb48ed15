package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

// ReportHandler handles HTTP requests for platform reports.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// PlatformEarnings handles GET /v1/reports/earnings?from=&to=
func (h *ReportHandler) PlatformEarnings(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	report, err := h.reports.PlatformEarnings(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toEarningsResponse(report))
}

// parseDateRange reads the from/to query dates. Both default to today.
func parseDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	today := domain.DateOf(time.Now().UTC())
	from, to = today, today

	if v := c.Query("from"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			respondBadRequest(c, err.Error())
			return time.Time{}, time.Time{}, false
		}
		from = d
	}
	if v := c.Query("to"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			respondBadRequest(c, err.Error())
			return time.Time{}, time.Time{}, false
		}
		to = d
	}
	return from, to, true
}

func toEarningsResponse(r service.EarningsReport) EarningsResponse {
	return EarningsResponse{
		DriverID:  r.DriverID,
		From:      domain.FormatDate(r.From),
		To:        domain.FormatDate(r.To),
		Total:     money(r.Total),
		RideCount: r.RideCount,
	}
}
