package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/ledgerrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/catalog"
)

type InventoryHandler struct {
	ledgerRepo ledgerrepo.Repo
}

func NewInventoryHandler(ledgerRepo ledgerrepo.Repo) *InventoryHandler {
	return &InventoryHandler{ledgerRepo: ledgerRepo}
}

// GetInventory returns the live stock per item as of an optional ?date,
// defaulting to today. Items with no positive net stock are omitted.
func (ih *InventoryHandler) GetInventory(c *gin.Context) {
	asOf := c.Query("date")
	if asOf == "" {
		asOf = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", asOf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	stock, err := ih.ledgerRepo.StockAsOf(c.Request.Context(), nil, asOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"as_of": asOf, "stock": stock})
}

func (ih *InventoryHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": catalog.Items()})
}
