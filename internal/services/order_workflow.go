package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/ledgerrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/quotesrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/runsrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/catalog"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/ledger"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/orders"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/runs"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

// OrderWorkflowService runs one customer request through the four-stage
// pipeline. Stage failures are contained: a failed stage leaves its
// artifact absent and the run still produces a customer message.
type OrderWorkflowService interface {
	ProcessRequest(ctx context.Context, req orders.Request) (*orders.Result, error)
}

type orderWorkflowService struct {
	ledgerRepo ledgerrepo.Repo
	quoteRepo  quotesrepo.Repo
	runRepo    runsrepo.Repo
	pricing    PricingService
	reorder    ReorderService
	worker     Worker
	log        *logger.Logger
}

func NewOrderWorkflowService(
	ledgerRepo ledgerrepo.Repo,
	quoteRepo quotesrepo.Repo,
	runRepo runsrepo.Repo,
	pricing PricingService,
	reorder ReorderService,
	worker Worker,
	baseLog *logger.Logger,
) OrderWorkflowService {
	return &orderWorkflowService{
		ledgerRepo: ledgerRepo,
		quoteRepo:  quoteRepo,
		runRepo:    runRepo,
		pricing:    pricing,
		reorder:    reorder,
		worker:     worker,
		log:        baseLog.With("service", "OrderWorkflowService"),
	}
}

func (s *orderWorkflowService) ProcessRequest(ctx context.Context, req orders.Request) (*orders.Result, error) {
	result := &orders.Result{StageErrors: map[string]string{}}
	workflowLog := s.log.With("request_id", req.ID, "request_date", req.RequestDate)

	plan := s.runPlanStage(ctx, workflowLog, req, result)
	items := plan.ActionableItems()

	if plan != nil && plan.NeedsInventory && len(items) > 0 {
		result.Inventory = s.runInventoryStage(ctx, workflowLog, req, plan, items, result)
	}
	if plan != nil && plan.NeedsQuote && len(items) > 0 {
		result.Quote = s.runQuoteStage(ctx, workflowLog, req, plan, items, result)
	}
	if plan != nil && plan.NeedsFulfillment && result.Quote != nil && len(result.Quote.FulfillableLines()) > 0 {
		result.Fulfillment = s.runFulfillmentStage(ctx, workflowLog, req, result.Quote, result)
	}

	s.finalize(result)
	s.persistRun(ctx, workflowLog, req, result)

	workflowLog.Info("request processed",
		"quote_total", result.QuoteTotal,
		"fulfilled_items", len(result.FulfilledItems),
		"stage_errors", len(result.StageErrors))
	return result, nil
}

func (s *orderWorkflowService) runPlanStage(ctx context.Context, workflowLog *logger.Logger, req orders.Request, result *orders.Result) *orders.OrchestrationPlan {
	payload := map[string]any{
		"request":       req,
		"catalog_names": catalog.Names(),
	}
	raw, err := s.worker.Invoke(ctx, WorkerRequest{
		Stage:        StagePlan,
		Instructions: planInstructions,
		Payload:      payload,
		Tools:        planTools,
		SchemaName:   "orchestration_plan",
		Schema:       orders.PlanSchema(),
	})
	if err != nil {
		s.failStage(workflowLog, result, StagePlan, err)
		return nil
	}
	plan, err := orders.DecodePlan(raw)
	if err != nil {
		s.failStage(workflowLog, result, StagePlan, err)
		return nil
	}

	// The planner proposes names; canonicalization has the final word.
	for i := range plan.Items {
		item := &plan.Items[i]
		sku := catalog.Canonicalize(item.NormalizedItem)
		if sku == "" {
			sku = catalog.Canonicalize(item.RequestedName)
		}
		if sku == "" {
			item.NormalizedItem = orders.UnsupportedItem
			continue
		}
		item.NormalizedItem = sku
	}

	result.Plan = plan
	return plan
}

func (s *orderWorkflowService) runInventoryStage(ctx context.Context, workflowLog *logger.Logger, req orders.Request, plan *orders.OrchestrationPlan, items []orders.PlannedItem, result *orders.Result) *orders.InventoryAssessment {
	stock, err := s.ledgerRepo.StockAsOf(ctx, nil, req.RequestDate)
	if err != nil {
		s.failStage(workflowLog, result, StageInventory, err)
		return nil
	}

	itemStock := make(map[string]int, len(items))
	restocks := make([]RestockPlan, 0, len(items))
	for _, item := range items {
		available, err := s.ledgerRepo.StockOf(ctx, nil, item.NormalizedItem, req.RequestDate)
		if err != nil {
			s.failStage(workflowLog, result, StageInventory, err)
			return nil
		}
		itemStock[item.NormalizedItem] = available

		if plan.NeedsReorder && available < item.Quantity {
			restock, err := s.reorder.PlanRestock(ctx, item.NormalizedItem, item.Quantity-available, req.RequestDate)
			if err != nil {
				s.failStage(workflowLog, result, StageInventory, err)
				return nil
			}
			restocks = append(restocks, restock)
		}
	}

	payload := map[string]any{
		"request_date":    req.RequestDate,
		"planned_items":   items,
		"stock_as_of":     stock,
		"item_stock":      itemStock,
		"restock_results": restocks,
	}
	raw, err := s.worker.Invoke(ctx, WorkerRequest{
		Stage:        StageInventory,
		Instructions: inventoryInstructions,
		Payload:      payload,
		Tools:        inventoryTools,
		SchemaName:   "inventory_assessment",
		Schema:       orders.InventorySchema(),
	})
	if err != nil {
		s.failStage(workflowLog, result, StageInventory, err)
		return nil
	}
	assessment, err := orders.DecodeInventory(raw)
	if err != nil {
		s.failStage(workflowLog, result, StageInventory, err)
		return nil
	}
	return assessment
}

func (s *orderWorkflowService) runQuoteStage(ctx context.Context, workflowLog *logger.Logger, req orders.Request, plan *orders.OrchestrationPlan, items []orders.PlannedItem, result *orders.Result) *orders.QuoteDecision {
	history, err := s.quoteRepo.Search(ctx, nil, searchKeywords(req), quotesrepo.DefaultSearchLimit)
	if err != nil {
		workflowLog.Warn("quote history lookup failed, quoting without it", "error", err)
		history = nil
	}
	cash := s.ledgerRepo.CashAsOf(ctx, nil, req.RequestDate)

	pricedLines := make([]PriceQuote, 0, len(items))
	for _, item := range items {
		quote, err := s.pricing.Price(item.NormalizedItem, item.Quantity, 0, expedited(item))
		if err != nil {
			workflowLog.Warn("reference pricing failed", "item", item.NormalizedItem, "error", err)
			continue
		}
		pricedLines = append(pricedLines, quote)
	}

	payload := map[string]any{
		"request":       req,
		"planned_items": items,
		"inventory":     result.Inventory,
		"quote_history": history,
		"cash_balance":  cash,
		"priced_lines":  pricedLines,
	}
	raw, err := s.worker.Invoke(ctx, WorkerRequest{
		Stage:        StageQuote,
		Instructions: quoteInstructions,
		Payload:      payload,
		Tools:        quoteTools,
		SchemaName:   "quote_decision",
		Schema:       orders.QuoteSchema(),
	})
	if err != nil {
		s.failStage(workflowLog, result, StageQuote, err)
		return nil
	}
	decision, err := orders.DecodeQuote(raw)
	if err != nil {
		s.failStage(workflowLog, result, StageQuote, err)
		return nil
	}

	s.repriceDecision(workflowLog, decision, plan)
	return decision
}

// repriceDecision replaces every worker-supplied price with the
// deterministic one and rewrites line names to their canonical SKU. The
// worker chooses discounts and statuses; arithmetic stays in the pricing
// engine.
func (s *orderWorkflowService) repriceDecision(workflowLog *logger.Logger, decision *orders.QuoteDecision, plan *orders.OrchestrationPlan) {
	urgencyByItem := make(map[string]string)
	for _, item := range plan.ActionableItems() {
		urgencyByItem[strings.ToLower(item.NormalizedItem)] = item.Urgency
	}

	total := 0.0
	for i := range decision.QuoteLines {
		line := &decision.QuoteLines[i]
		rush := strings.EqualFold(urgencyByItem[strings.ToLower(line.ItemName)], "high")
		quote, err := s.pricing.Price(line.ItemName, line.Quantity, line.DiscountPct, rush)
		if err != nil {
			workflowLog.Warn("declining unpriceable quote line", "item", line.ItemName, "error", err)
			line.Status = "declined"
			line.UnitPrice = 0
			line.LineTotal = 0
			continue
		}
		line.ItemName = quote.ItemName
		line.UnitPrice = quote.UnitPrice
		line.LineTotal = quote.LineTotal
		line.DiscountPct = quote.DiscountPct
		if line.Fulfillable() {
			total += quote.LineTotal
		}
	}
	decision.TotalAmount = round2(total)
	decision.CanFulfill = len(decision.FulfillableLines()) > 0
}

func (s *orderWorkflowService) runFulfillmentStage(ctx context.Context, workflowLog *logger.Logger, req orders.Request, decision *orders.QuoteDecision, result *orders.Result) *orders.FulfillmentSummary {
	recordedIDs := make([]int64, 0, len(decision.QuoteLines))
	fulfilled := make([]string, 0, len(decision.QuoteLines))

	type recordedSale struct {
		ItemName      string  `json:"item_name"`
		Units         int     `json:"units"`
		Revenue       float64 `json:"revenue"`
		TransactionID int64   `json:"transaction_id"`
	}
	sales := make([]recordedSale, 0, len(decision.QuoteLines))

	for _, line := range decision.FulfillableLines() {
		units := line.Quantity
		available, err := s.ledgerRepo.StockOf(ctx, nil, line.ItemName, req.RequestDate)
		if err != nil {
			s.failStage(workflowLog, result, StageFulfillment, err)
			return nil
		}
		if units > available {
			units = available
		}
		if units <= 0 {
			continue
		}

		revenue := round2(line.UnitPrice * float64(units))
		itemName := line.ItemName
		id, err := s.ledgerRepo.Append(ctx, nil, &itemName, ledger.TypeSales, &units, revenue, req.RequestDate)
		if err != nil {
			s.failStage(workflowLog, result, StageFulfillment, err)
			return nil
		}
		recordedIDs = append(recordedIDs, id)
		fulfilled = append(fulfilled, line.ItemName)
		sales = append(sales, recordedSale{ItemName: line.ItemName, Units: units, Revenue: revenue, TransactionID: id})
	}

	// The ledger already holds the truth; the customer message survives or
	// falls back, but the recorded sales stand either way.
	result.FulfilledItems = fulfilled

	payload := map[string]any{
		"request":        req,
		"quote":          decision,
		"recorded_sales": sales,
	}
	raw, err := s.worker.Invoke(ctx, WorkerRequest{
		Stage:        StageFulfillment,
		Instructions: fulfillmentInstructions,
		Payload:      payload,
		Tools:        fulfillmentTools,
		SchemaName:   "fulfillment_summary",
		Schema:       orders.FulfillmentSchema(),
	})
	if err != nil {
		s.failStage(workflowLog, result, StageFulfillment, err)
		return nil
	}
	summary, err := orders.DecodeFulfillment(raw)
	if err != nil {
		s.failStage(workflowLog, result, StageFulfillment, err)
		return nil
	}

	// Ledger ids the pipeline recorded override whatever the worker claims.
	summary.RecordedTransactions = recordedIDs
	summary.FulfilledItems = fulfilled
	return summary
}

// finalize picks exactly one non-empty customer message, preferring the
// richest artifact that survived.
func (s *orderWorkflowService) finalize(result *orders.Result) {
	if result.Quote != nil {
		result.QuoteTotal = result.Quote.TotalAmount
	}

	switch {
	case result.Fulfillment != nil && strings.TrimSpace(result.Fulfillment.CustomerMessage) != "":
		result.CustomerMessage = result.Fulfillment.CustomerMessage
	case result.Quote != nil && strings.TrimSpace(result.Quote.QuoteExplanation) != "":
		result.CustomerMessage = fmt.Sprintf(
			"Thank you for your request. %s Your quoted total is $%.2f.",
			strings.TrimSpace(result.Quote.QuoteExplanation), result.Quote.TotalAmount)
	case result.Inventory != nil && strings.TrimSpace(result.Inventory.DecisionNotes) != "":
		result.CustomerMessage = fmt.Sprintf(
			"Thank you for your request. %s", strings.TrimSpace(result.Inventory.DecisionNotes))
	default:
		result.CustomerMessage = "Thank you for contacting the Beaver's Choice Paper Company. " +
			"We could not prepare a complete quote for this request; a member of our team will follow up shortly."
	}
}

func (s *orderWorkflowService) persistRun(ctx context.Context, workflowLog *logger.Logger, req orders.Request, result *orders.Result) {
	run := &runs.PipelineRun{
		RequestID:       req.ID,
		RequestDate:     req.RequestDate,
		Plan:            toJSON(result.Plan),
		Inventory:       toJSON(result.Inventory),
		Quote:           toJSON(result.Quote),
		Fulfillment:     toJSON(result.Fulfillment),
		StageErrors:     toJSON(result.StageErrors),
		CustomerMessage: result.CustomerMessage,
	}
	if err := s.runRepo.Create(ctx, nil, run); err != nil {
		workflowLog.Warn("failed to persist pipeline run", "error", err)
	}
}

func (s *orderWorkflowService) failStage(workflowLog *logger.Logger, result *orders.Result, stage string, err error) {
	workflowLog.Error("stage failed", "stage", stage, "error", err)
	result.StageErrors[stage] = err.Error()
}

// searchKeywords derives the quote-history search terms from the request
// metadata. Conjunctive search makes every extra term narrowing, so only
// the strongest signals are used.
func searchKeywords(req orders.Request) []string {
	var keywords []string
	if event := strings.TrimSpace(req.Event); event != "" {
		keywords = append(keywords, event)
	}
	if len(keywords) == 0 {
		if job := strings.TrimSpace(req.Job); job != "" {
			keywords = append(keywords, job)
		}
	}
	return keywords
}

func expedited(item orders.PlannedItem) bool {
	return strings.EqualFold(item.Urgency, "high")
}

func toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
