package orders

// JSON schemas constraining each stage's worker output. Kept strict
// (additionalProperties false, every field required) so malformed results
// fail at the collaborator boundary instead of corrupting a later stage.

func PlanSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"summary":           map[string]any{"type": "string"},
			"due_date":          map[string]any{"type": "string"},
			"customer_priority": map[string]any{"type": "string", "enum": []any{"high", "medium", "low"}},
			"discount_strategy": map[string]any{"type": "string"},
			"needs_inventory":   map[string]any{"type": "boolean"},
			"needs_reorder":     map[string]any{"type": "boolean"},
			"needs_quote":       map[string]any{"type": "boolean"},
			"needs_fulfillment": map[string]any{"type": "boolean"},
			"items": map[string]any{
				"type":     "array",
				"maxItems": 4,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"requested_name":  map[string]any{"type": "string"},
						"normalized_item": map[string]any{"type": "string"},
						"quantity":        map[string]any{"type": "integer", "minimum": 0},
						"urgency":         map[string]any{"type": "string", "enum": []any{"high", "medium", "low"}},
						"notes":           map[string]any{"type": "string"},
					},
					"required": []any{"requested_name", "normalized_item", "quantity", "urgency", "notes"},
				},
			},
		},
		"required": []any{
			"summary", "due_date", "customer_priority", "discount_strategy",
			"needs_inventory", "needs_reorder", "needs_quote", "needs_fulfillment", "items",
		},
	}
}

func InventorySchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"lines": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"item_name":       map[string]any{"type": "string"},
						"requested_units": map[string]any{"type": "integer"},
						"available_units": map[string]any{"type": "integer"},
						"ready_units":     map[string]any{"type": "integer"},
						"status":          map[string]any{"type": "string"},
						"action":          map[string]any{"type": "string"},
						"eta":             map[string]any{"type": "string"},
						"notes":           map[string]any{"type": "string"},
					},
					"required": []any{
						"item_name", "requested_units", "available_units",
						"ready_units", "status", "action", "eta", "notes",
					},
				},
			},
			"decision_notes": map[string]any{"type": "string"},
		},
		"required": []any{"lines", "decision_notes"},
	}
}

func QuoteSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"quote_lines": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"item_name":    map[string]any{"type": "string"},
						"quantity":     map[string]any{"type": "integer"},
						"unit_price":   map[string]any{"type": "number"},
						"line_total":   map[string]any{"type": "number"},
						"discount_pct": map[string]any{"type": "number"},
						"status":       map[string]any{"type": "string"},
						"notes":        map[string]any{"type": "string"},
					},
					"required": []any{
						"item_name", "quantity", "unit_price", "line_total",
						"discount_pct", "status", "notes",
					},
				},
			},
			"declined_items":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"total_amount":      map[string]any{"type": "number"},
			"quote_explanation": map[string]any{"type": "string"},
			"can_fulfill":       map[string]any{"type": "boolean"},
		},
		"required": []any{"quote_lines", "declined_items", "total_amount", "quote_explanation", "can_fulfill"},
	}
}

func FulfillmentSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"fulfilled_items":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"recorded_transactions": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
			"delivery_notes":        map[string]any{"type": "string"},
			"customer_message":      map[string]any{"type": "string"},
		},
		"required": []any{"fulfilled_items", "recorded_transactions", "delivery_notes", "customer_message"},
	}
}
