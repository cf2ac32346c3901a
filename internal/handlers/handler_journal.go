package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/helvetibooks/fibu_backend/internal/core/ports/services"
	"github.com/helvetibooks/fibu_backend/internal/dto"
	"github.com/helvetibooks/fibu_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries under a company
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journalGroup := rg.Group("/journal-entries")
	{
		journalGroup.POST("", h.createEntry)
		journalGroup.GET("", h.listEntries)
		journalGroup.GET("/:entry_id", h.getEntry)
		journalGroup.PATCH("/:entry_id", h.updateEntry)
		journalGroup.DELETE("/:entry_id", h.deleteEntry)
		journalGroup.POST("/:entry_id/post", h.postEntry)
		journalGroup.POST("/:entry_id/reverse", h.reverseEntry)
	}

	// Line-level view of the ledger, per account
	rg.GET("/accounts/:account_id/journal-lines", h.listLinesByAccount)
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid list entries params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) getEntry(c *gin.Context) {
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), companyID, entryID)
	if err != nil {
		respondError(c, err, "journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid update entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), companyID, entryID, req, userID)
	if err != nil {
		respondError(c, err, "journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) deleteEntry(c *gin.Context) {
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	if err := h.journalService.DeleteEntry(c.Request.Context(), companyID, entryID, userID); err != nil {
		respondError(c, err, "journal entry")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *journalHandler) postEntry(c *gin.Context) {
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	entry, err := h.journalService.PostEntry(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		respondError(c, err, "journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid reverse entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), companyID, entryID, req.ReversalDate, req.Reason, userID)
	if err != nil {
		respondError(c, err, "journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

func (h *journalHandler) listLinesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")

	var params dto.ListJournalLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid list lines params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.journalService.ListLinesByAccount(c.Request.Context(), companyID, accountID, params)
	if err != nil {
		respondError(c, err, "journal lines")
		return
	}

	c.JSON(http.StatusOK, resp)
}
