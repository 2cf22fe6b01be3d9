package handlers

import (
	"net/http"

	"doit/services/catalog"
	"doit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the offerable services and the bookable time slots.
type CatalogHandler struct {
	Catalog *catalog.Service
}

func NewCatalogHandler(cat *catalog.Service) *CatalogHandler {
	return &CatalogHandler{Catalog: cat}
}

// ServicePricesHandler returns the cached catalog.
func (h *CatalogHandler) ServicePricesHandler(c *gin.Context) {
	entries, err := h.Catalog.Entries(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to load catalog", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load service prices"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// TimeSlotsHandler returns the fixed appointment slots.
func (h *CatalogHandler) TimeSlotsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timeSlots": utils.TimeSlots})
}
