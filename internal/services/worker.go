package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/openai"
)

// Pipeline stage names, used for gating, logging, and error attribution.
const (
	StagePlan        = "plan"
	StageInventory   = "inventory"
	StageQuote       = "quote"
	StageFulfillment = "fulfillment"
)

// ToolSpec documents one read-only operation whose result is computed
// ahead of a worker call and included in the payload. The worker reasons
// over tool outputs; it never executes tools itself.
type ToolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Closed per-stage tool sets. Each stage sees exactly these results in its
// payload, nothing else.
var (
	planTools = []ToolSpec{
		{Name: "catalog_names", Description: "every canonical item name in the catalog"},
	}
	inventoryTools = []ToolSpec{
		{Name: "stock_as_of", Description: "net stock per item up to the request date"},
		{Name: "item_stock", Description: "net stock for each requested item"},
		{Name: "restock_results", Description: "outcome of replenishment orders placed for shortfalls"},
	}
	quoteTools = []ToolSpec{
		{Name: "quote_history", Description: "past quotes matching the request keywords"},
		{Name: "cash_balance", Description: "cash position as of the request date"},
		{Name: "priced_lines", Description: "deterministic unit price and line total per item"},
	}
	fulfillmentTools = []ToolSpec{
		{Name: "recorded_sales", Description: "ledger ids of the sale rows recorded for this request"},
	}
)

// WorkerRequest is one structured reasoning call: a fixed per-stage policy
// string, a payload of precomputed tool results, and the schema the result
// must satisfy.
type WorkerRequest struct {
	Stage        string
	Instructions string
	Payload      map[string]any
	Tools        []ToolSpec
	SchemaName   string
	Schema       map[string]any
}

// Worker is the external reasoning collaborator. Implementations must
// bound their own latency; the pipeline blocks on each call.
type Worker interface {
	Invoke(ctx context.Context, req WorkerRequest) (map[string]any, error)
}

type openaiWorker struct {
	client openai.Client
	log    *logger.Logger
}

func NewOpenAIWorker(client openai.Client, baseLog *logger.Logger) Worker {
	return &openaiWorker{client: client, log: baseLog.With("service", "Worker")}
}

func (w *openaiWorker) Invoke(ctx context.Context, req WorkerRequest) (map[string]any, error) {
	body := map[string]any{
		"payload": req.Payload,
		"tools":   req.Tools,
	}
	userMsg, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", req.Stage, err)
	}

	result, err := w.client.GenerateJSON(ctx, req.Instructions, string(userMsg), req.SchemaName, req.Schema)
	if err != nil {
		return nil, fmt.Errorf("%s worker call: %w", req.Stage, err)
	}
	return result, nil
}

// Per-stage policy strings. Fixed text, never interpolated with request
// data; request specifics travel in the payload.
const (
	planInstructions = `You are the orchestration planner for the Beaver's Choice Paper Company.
Read the customer request in the payload and map it onto at most 4 catalog items,
using only names from the catalog_names tool result. For anything the catalog
cannot supply, set normalized_item to "UNSUPPORTED". Estimate quantity, urgency,
and the due date from the request text. Set needs_inventory, needs_reorder,
needs_quote and needs_fulfillment to reflect which later steps this request
actually requires. Summarize the request in one or two sentences.`

	inventoryInstructions = `You are the inventory manager for the Beaver's Choice Paper Company.
The payload carries the planned items, the current stock per item, and the
outcome of any replenishment orders already placed. Produce one line per planned
item stating how many units are ready now, what action was taken, and when any
remaining units arrive. Use status values like "available", "partial",
"backordered" or "unavailable". Keep decision_notes short and factual.`

	quoteInstructions = `You are the quoting specialist for the Beaver's Choice Paper Company.
The payload carries the planned items, their inventory assessment, similar past
quotes, the cash position, and deterministic priced_lines with the exact unit
price and line total for each item. Copy prices from priced_lines; never invent
your own arithmetic. Give each line status "ready" when inventory can cover it,
"partial" when only part of the quantity is ready, or "declined" with a reason in
the notes when inventory marked it unavailable. List declined item names in
declined_items and explain the overall quote in plain language for the customer.`

	fulfillmentInstructions = `You are the fulfillment coordinator for the Beaver's Choice Paper Company.
The payload carries the quote lines and the sale transactions already recorded in
the ledger. Write the final customer message: confirm what ships and when, note
anything partial or declined, and keep the tone warm and professional. Never
mention internal cash figures, ledger ids, or system details in the customer
message.`
)
