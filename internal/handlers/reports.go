package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beaverchoice/fulfillment-backend/internal/services"
)

type ReportHandler struct {
	reportingService services.ReportingService
}

func NewReportHandler(reportingService services.ReportingService) *ReportHandler {
	return &ReportHandler{reportingService: reportingService}
}

func (rh *ReportHandler) GetReport(c *gin.Context) {
	asOf := c.Param("date")
	if _, err := time.Parse("2006-01-02", asOf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	report, err := rh.reportingService.Report(c.Request.Context(), asOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}
