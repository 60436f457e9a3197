package app

import (
	"fmt"

	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/openai"
	"github.com/beaverchoice/fulfillment-backend/internal/services"
)

type Services struct {
	Pricing    services.PricingService
	Reorder    services.ReorderService
	Reporting  services.ReportingService
	Worker     services.Worker
	Workflow   services.OrderWorkflowService
	Simulation services.SimulationService
}

func wireServices(log *logger.Logger, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	aiClient, err := openai.NewClient(log)
	if err != nil {
		return Services{}, fmt.Errorf("init openai client: %w", err)
	}
	worker := services.NewOpenAIWorker(aiClient, log)

	pricing := services.NewPricingService(log)
	reorder := services.NewReorderService(reposet.Ledger, log)
	reporting := services.NewReportingService(reposet.Ledger, services.NewReportCache(log), log)
	workflow := services.NewOrderWorkflowService(
		reposet.Ledger, reposet.Quotes, reposet.Runs,
		pricing, reorder, worker, log,
	)
	simulation := services.NewSimulationService(reposet.Quotes, workflow, reporting, log)

	return Services{
		Pricing:    pricing,
		Reorder:    reorder,
		Reporting:  reporting,
		Worker:     worker,
		Workflow:   workflow,
		Simulation: simulation,
	}, nil
}
