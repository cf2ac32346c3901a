package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/helvetibooks/fibu_backend/internal/core/ports/services"
	"github.com/helvetibooks/fibu_backend/internal/dto"
	"github.com/helvetibooks/fibu_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// vatHandler handles HTTP requests related to VAT returns
type vatHandler struct {
	vatService portssvc.VatSvcFacade
}

// newVatHandler creates a new vatHandler
func newVatHandler(vs portssvc.VatSvcFacade) *vatHandler {
	return &vatHandler{vatService: vs}
}

// registerVatRoutes registers routes related to VAT returns under a company
func registerVatRoutes(rg *gin.RouterGroup, vatService portssvc.VatSvcFacade) {
	h := newVatHandler(vatService)

	vatGroup := rg.Group("/vat-returns")
	{
		vatGroup.POST("", h.createReturn)
		vatGroup.GET("", h.listReturns)
		vatGroup.GET("/:return_id", h.getReturn)
		vatGroup.PATCH("/:return_id", h.updateReturn)
		vatGroup.DELETE("/:return_id", h.deleteReturn)
		vatGroup.POST("/:return_id/calculate", h.calculateReturn)
		vatGroup.POST("/:return_id/submit", h.submitReturn)
		vatGroup.GET("/:return_id/export", h.exportReturn)
	}
}

func (h *vatHandler) createReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	var req dto.CreateVatReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create VAT return request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ret, err := h.vatService.CreateReturn(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "VAT return")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVatReturnResponse(ret))
}

func (h *vatHandler) listReturns(c *gin.Context) {
	companyID := c.Param("company_id")

	returns, err := h.vatService.ListReturns(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "VAT returns")
		return
	}

	c.JSON(http.StatusOK, gin.H{"returns": dto.ToVatReturnResponses(returns)})
}

func (h *vatHandler) getReturn(c *gin.Context) {
	companyID := c.Param("company_id")
	returnID := c.Param("return_id")

	ret, err := h.vatService.GetReturnByID(c.Request.Context(), companyID, returnID)
	if err != nil {
		respondError(c, err, "VAT return")
		return
	}

	c.JSON(http.StatusOK, dto.ToVatReturnResponse(ret))
}

func (h *vatHandler) updateReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	returnID := c.Param("return_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	var req dto.UpdateVatReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid update VAT return request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ret, err := h.vatService.UpdateReturn(c.Request.Context(), companyID, returnID, req, userID)
	if err != nil {
		respondError(c, err, "VAT return")
		return
	}

	c.JSON(http.StatusOK, dto.ToVatReturnResponse(ret))
}

func (h *vatHandler) deleteReturn(c *gin.Context) {
	companyID := c.Param("company_id")
	returnID := c.Param("return_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	if err := h.vatService.DeleteReturn(c.Request.Context(), companyID, returnID, userID); err != nil {
		respondError(c, err, "VAT return")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *vatHandler) calculateReturn(c *gin.Context) {
	companyID := c.Param("company_id")
	returnID := c.Param("return_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	ret, err := h.vatService.CalculateReturn(c.Request.Context(), companyID, returnID, userID)
	if err != nil {
		respondError(c, err, "VAT return")
		return
	}

	c.JSON(http.StatusOK, dto.ToVatReturnResponse(ret))
}

func (h *vatHandler) submitReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	returnID := c.Param("return_id")
	userID := middleware.GetUserIDFromContext(c.Request.Context())

	var req dto.SubmitVatReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid submit VAT return request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ret, err := h.vatService.SubmitReturn(c.Request.Context(), companyID, returnID, req, userID)
	if err != nil {
		respondError(c, err, "VAT return")
		return
	}

	c.JSON(http.StatusOK, dto.ToVatReturnResponse(ret))
}

func (h *vatHandler) exportReturn(c *gin.Context) {
	companyID := c.Param("company_id")
	returnID := c.Param("return_id")

	doc, err := h.vatService.ExportReturn(c.Request.Context(), companyID, returnID)
	if err != nil {
		respondError(c, err, "VAT declaration")
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", doc)
}
