package orders

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnsupportedItem is the sentinel the planner uses for requested items
// that map to no catalog SKU.
const UnsupportedItem = "UNSUPPORTED"

// Quote line statuses that permit fulfillment.
const (
	LineStatusReady   = "ready"
	LineStatusPartial = "partial"
)

// Request is one inbound customer request entering the pipeline.
type Request struct {
	ID          int64  `json:"id"`
	Job         string `json:"job"`
	Event       string `json:"event"`
	NeedSize    string `json:"need_size"`
	Request     string `json:"request"`
	RequestDate string `json:"request_date"`
}

// PlannedItem is one SKU the planner extracted from the request text.
type PlannedItem struct {
	RequestedName  string `json:"requested_name"`
	NormalizedItem string `json:"normalized_item"`
	Quantity       int    `json:"quantity"`
	Urgency        string `json:"urgency"`
	Notes          string `json:"notes"`
}

// Actionable reports whether this item may enter downstream stages.
func (p PlannedItem) Actionable() bool {
	name := strings.TrimSpace(p.NormalizedItem)
	return name != "" && name != UnsupportedItem && p.Quantity > 0
}

// OrchestrationPlan is the Plan stage artifact: the request mapped onto
// catalog SKUs plus the gates controlling which later stages run.
type OrchestrationPlan struct {
	Summary          string        `json:"summary"`
	DueDate          string        `json:"due_date"`
	CustomerPriority string        `json:"customer_priority"`
	DiscountStrategy string        `json:"discount_strategy"`
	NeedsInventory   bool          `json:"needs_inventory"`
	NeedsReorder     bool          `json:"needs_reorder"`
	NeedsQuote       bool          `json:"needs_quote"`
	NeedsFulfillment bool          `json:"needs_fulfillment"`
	Items            []PlannedItem `json:"items"`
}

// ActionableItems drops unsupported and non-positive-quantity items before
// any downstream stage sees them.
func (p *OrchestrationPlan) ActionableItems() []PlannedItem {
	if p == nil {
		return nil
	}
	out := make([]PlannedItem, 0, len(p.Items))
	for _, item := range p.Items {
		if item.Actionable() {
			out = append(out, item)
		}
	}
	return out
}

// InventoryLine is the Inventory stage's per-item assessment.
type InventoryLine struct {
	ItemName       string `json:"item_name"`
	RequestedUnits int    `json:"requested_units"`
	AvailableUnits int    `json:"available_units"`
	ReadyUnits     int    `json:"ready_units"`
	Status         string `json:"status"`
	Action         string `json:"action"`
	ETA            string `json:"eta"`
	Notes          string `json:"notes"`
}

type InventoryAssessment struct {
	Lines         []InventoryLine `json:"lines"`
	DecisionNotes string          `json:"decision_notes"`
}

// QuoteLine is one priced line of the quote decision. Unit price and line
// total are authoritative only after deterministic re-pricing.
type QuoteLine struct {
	ItemName    string  `json:"item_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
	DiscountPct float64 `json:"discount_pct"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}

// Fulfillable reports whether the line's status allows recording a sale.
func (l QuoteLine) Fulfillable() bool {
	switch strings.ToLower(strings.TrimSpace(l.Status)) {
	case LineStatusReady, LineStatusPartial:
		return true
	default:
		return false
	}
}

type QuoteDecision struct {
	QuoteLines       []QuoteLine `json:"quote_lines"`
	DeclinedItems    []string    `json:"declined_items"`
	TotalAmount      float64     `json:"total_amount"`
	QuoteExplanation string      `json:"quote_explanation"`
	CanFulfill       bool        `json:"can_fulfill"`
}

// FulfillableLines returns the lines eligible for sale recording.
func (q *QuoteDecision) FulfillableLines() []QuoteLine {
	if q == nil {
		return nil
	}
	out := make([]QuoteLine, 0, len(q.QuoteLines))
	for _, line := range q.QuoteLines {
		if line.Fulfillable() {
			out = append(out, line)
		}
	}
	return out
}

type FulfillmentSummary struct {
	FulfilledItems       []string `json:"fulfilled_items"`
	RecordedTransactions []int64  `json:"recorded_transactions"`
	DeliveryNotes        string   `json:"delivery_notes"`
	CustomerMessage      string   `json:"customer_message"`
}

// Result is the terminal output of one pipeline run: whatever stage
// artifacts were produced, the single customer message, and any per-stage
// errors kept for diagnostics.
type Result struct {
	Plan            *OrchestrationPlan   `json:"plan,omitempty"`
	Inventory       *InventoryAssessment `json:"inventory,omitempty"`
	Quote           *QuoteDecision       `json:"quote,omitempty"`
	Fulfillment     *FulfillmentSummary  `json:"fulfillment,omitempty"`
	CustomerMessage string               `json:"customer_message"`
	QuoteTotal      float64              `json:"quote_total"`
	FulfilledItems  []string             `json:"fulfilled_items"`
	StageErrors     map[string]string    `json:"stage_errors,omitempty"`
}

func decodeInto(obj map[string]any, out any) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// DecodePlan validates a worker result into an OrchestrationPlan.
func DecodePlan(obj map[string]any) (*OrchestrationPlan, error) {
	if obj == nil {
		return nil, fmt.Errorf("empty plan result")
	}
	var plan OrchestrationPlan
	if err := decodeInto(obj, &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	for i := range plan.Items {
		if plan.Items[i].Quantity < 0 {
			plan.Items[i].Quantity = 0
		}
	}
	return &plan, nil
}

// DecodeInventory validates a worker result into an InventoryAssessment.
func DecodeInventory(obj map[string]any) (*InventoryAssessment, error) {
	if obj == nil {
		return nil, fmt.Errorf("empty inventory result")
	}
	var assessment InventoryAssessment
	if err := decodeInto(obj, &assessment); err != nil {
		return nil, fmt.Errorf("decode inventory assessment: %w", err)
	}
	if len(assessment.Lines) == 0 {
		return nil, fmt.Errorf("inventory assessment has no lines")
	}
	return &assessment, nil
}

// DecodeQuote validates a worker result into a QuoteDecision.
func DecodeQuote(obj map[string]any) (*QuoteDecision, error) {
	if obj == nil {
		return nil, fmt.Errorf("empty quote result")
	}
	var decision QuoteDecision
	if err := decodeInto(obj, &decision); err != nil {
		return nil, fmt.Errorf("decode quote decision: %w", err)
	}
	return &decision, nil
}

// DecodeFulfillment validates a worker result into a FulfillmentSummary.
func DecodeFulfillment(obj map[string]any) (*FulfillmentSummary, error) {
	if obj == nil {
		return nil, fmt.Errorf("empty fulfillment result")
	}
	var summary FulfillmentSummary
	if err := decodeInto(obj, &summary); err != nil {
		return nil, fmt.Errorf("decode fulfillment summary: %w", err)
	}
	if strings.TrimSpace(summary.CustomerMessage) == "" {
		return nil, fmt.Errorf("fulfillment summary missing customer message")
	}
	return &summary, nil
}
