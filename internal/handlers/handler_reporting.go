package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/helvetibooks/fibu_backend/internal/core/ports/services"
	"github.com/helvetibooks/fibu_backend/internal/dto"
	"github.com/helvetibooks/fibu_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to ledger reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to ledger reports under a company
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/account-balance/:account_id", h.getAccountBalance)
	}
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format. Use YYYY-MM-DD"})
		return nil, false
	}
	return &parsed, true
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	now := time.Now()
	firstOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	from := firstOfYear
	if parsed, ok := parseDateQuery(c, "from"); !ok {
		return
	} else if parsed != nil {
		from = *parsed
	}
	to := now.Truncate(24 * time.Hour)
	if parsed, ok := parseDateQuery(c, "to"); !ok {
		return
	} else if parsed != nil {
		to = *parsed
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, from, to)
	if err != nil {
		respondError(c, err, "trial balance")
		return
	}

	logger.Info("Trial balance generated", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.TrialBalanceResponse{
		From: from,
		To:   to,
		Rows: dto.ToTrialBalanceRowResponses(rows),
	})
}

func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), companyID, accountID, from, to)
	if err != nil {
		respondError(c, err, "account balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(balance))
}
