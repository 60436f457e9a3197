package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beaverchoice/fulfillment-backend/internal/domain/orders"
	"github.com/beaverchoice/fulfillment-backend/internal/services"
)

type OrderHandler struct {
	workflowService services.OrderWorkflowService
}

func NewOrderHandler(workflowService services.OrderWorkflowService) *OrderHandler {
	return &OrderHandler{workflowService: workflowService}
}

type processRequestBody struct {
	ID          int64  `json:"id"`
	Job         string `json:"job"`
	Event       string `json:"event"`
	NeedSize    string `json:"need_size"`
	Request     string `json:"request" binding:"required"`
	RequestDate string `json:"request_date"`
}

func (oh *OrderHandler) ProcessRequest(c *gin.Context) {
	var body processRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(body.RequestDate) == "" {
		body.RequestDate = time.Now().UTC().Format("2006-01-02")
	}

	result, err := oh.workflowService.ProcessRequest(c.Request.Context(), orders.Request{
		ID:          body.ID,
		Job:         body.Job,
		Event:       body.Event,
		NeedSize:    body.NeedSize,
		Request:     body.Request,
		RequestDate: body.RequestDate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
