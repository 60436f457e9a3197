package quotes

// QuoteRequest is one historical customer inquiry loaded from seed data.
// The response column holds the customer-facing text of the original
// request narrative; quote search matches against it.
type QuoteRequest struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Job         string `gorm:"column:job" json:"job"`
	Event       string `gorm:"column:event" json:"event"`
	NeedSize    string `gorm:"column:need_size" json:"need_size"`
	Request     string `gorm:"column:request;type:text" json:"request"`
	Response    string `gorm:"column:response;type:text" json:"response"`
	RequestDate string `gorm:"column:request_date" json:"request_date"`
}

func (QuoteRequest) TableName() string { return "quote_requests" }

// Quote is one historical quote row joined to its request by request_id.
// Written once at seed time and read-only afterwards.
type Quote struct {
	RequestID        int64   `gorm:"column:request_id;primaryKey" json:"request_id"`
	TotalAmount      float64 `gorm:"column:total_amount" json:"total_amount"`
	QuoteExplanation string  `gorm:"column:quote_explanation;type:text" json:"quote_explanation"`
	OrderDate        string  `gorm:"column:order_date;index" json:"order_date"`
	JobType          string  `gorm:"column:job_type" json:"job_type"`
	OrderSize        string  `gorm:"column:order_size" json:"order_size"`
	EventType        string  `gorm:"column:event_type" json:"event_type"`
}

func (Quote) TableName() string { return "quotes" }

// Record is one quote-history search hit: the quote joined with the
// original request text.
type Record struct {
	RequestID        int64   `json:"request_id"`
	OriginalRequest  string  `json:"original_request"`
	TotalAmount      float64 `json:"total_amount"`
	QuoteExplanation string  `json:"quote_explanation"`
	JobType          string  `json:"job_type"`
	OrderSize        string  `json:"order_size"`
	EventType        string  `json:"event_type"`
	OrderDate        string  `json:"order_date"`
}
