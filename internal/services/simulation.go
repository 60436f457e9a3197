package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/quotesrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/orders"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

// SimulationService replays the seeded request history through the
// pipeline in date order and writes one CSV result row per request.
type SimulationService interface {
	Run(ctx context.Context, out io.Writer) error
}

type simulationService struct {
	quoteRepo quotesrepo.Repo
	workflow  OrderWorkflowService
	reporting ReportingService
	log       *logger.Logger
}

func NewSimulationService(
	quoteRepo quotesrepo.Repo,
	workflow OrderWorkflowService,
	reporting ReportingService,
	baseLog *logger.Logger,
) SimulationService {
	return &simulationService{
		quoteRepo: quoteRepo,
		workflow:  workflow,
		reporting: reporting,
		log:       baseLog.With("service", "SimulationService"),
	}
}

func (s *simulationService) Run(ctx context.Context, out io.Writer) error {
	requests, err := s.quoteRepo.ListRequestsByDate(ctx, nil)
	if err != nil {
		return fmt.Errorf("load request history: %w", err)
	}
	if len(requests) == 0 {
		return fmt.Errorf("no seeded requests to replay")
	}

	writer := csv.NewWriter(out)
	header := []string{
		"request_id", "request_date", "cash_balance", "inventory_value",
		"quote_total", "fulfilled_items", "response",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write results header: %w", err)
	}

	s.log.Info("starting simulation", "requests", len(requests))
	for _, qr := range requests {
		req := orders.Request{
			ID:          qr.ID,
			Job:         qr.Job,
			Event:       qr.Event,
			NeedSize:    qr.NeedSize,
			Request:     qr.Response,
			RequestDate: qr.RequestDate,
		}

		result, err := s.workflow.ProcessRequest(ctx, req)
		if err != nil {
			return fmt.Errorf("process request %d: %w", req.ID, err)
		}

		report, err := s.reporting.Report(ctx, req.RequestDate)
		if err != nil {
			return fmt.Errorf("report after request %d: %w", req.ID, err)
		}

		row := []string{
			strconv.FormatInt(req.ID, 10),
			req.RequestDate,
			fmt.Sprintf("%.2f", report.CashBalance),
			fmt.Sprintf("%.2f", report.InventoryValue),
			fmt.Sprintf("%.2f", result.QuoteTotal),
			strings.Join(result.FulfilledItems, ";"),
			result.CustomerMessage,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write result row for request %d: %w", req.ID, err)
		}
		writer.Flush()
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}

	final := requests[len(requests)-1].RequestDate
	report, err := s.reporting.Report(ctx, final)
	if err != nil {
		return fmt.Errorf("final report: %w", err)
	}
	s.log.Info("simulation complete",
		"requests", len(requests),
		"final_cash", report.CashBalance,
		"final_inventory_value", report.InventoryValue,
		"final_total_assets", report.TotalAssets)
	return nil
}
