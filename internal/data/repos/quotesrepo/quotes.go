package quotesrepo

import (
	"context"
	"strings"

	"github.com/beaverchoice/fulfillment-backend/internal/domain/quotes"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
	"gorm.io/gorm"
)

const DefaultSearchLimit = 5

// Repo reads and seeds the historical request/quote tables. The history is
// read-only for the pipeline; only seeding writes here.
type Repo interface {
	CreateRequests(ctx context.Context, tx *gorm.DB, reqs []*quotes.QuoteRequest) error
	CreateQuotes(ctx context.Context, tx *gorm.DB, rows []*quotes.Quote) error
	ListRequestsByDate(ctx context.Context, tx *gorm.DB) ([]*quotes.QuoteRequest, error)
	Search(ctx context.Context, tx *gorm.DB, keywords []string, limit int) ([]quotes.Record, error)
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "QuoteRepo")}
}

func (r *repo) CreateRequests(ctx context.Context, tx *gorm.DB, reqs []*quotes.QuoteRequest) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(reqs) == 0 {
		return nil
	}
	const batchSize = 200
	return transaction.WithContext(ctx).CreateInBatches(reqs, batchSize).Error
}

func (r *repo) CreateQuotes(ctx context.Context, tx *gorm.DB, rows []*quotes.Quote) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	const batchSize = 200
	return transaction.WithContext(ctx).CreateInBatches(rows, batchSize).Error
}

func (r *repo) ListRequestsByDate(ctx context.Context, tx *gorm.DB) ([]*quotes.QuoteRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*quotes.QuoteRequest
	if err := transaction.WithContext(ctx).
		Order("request_date ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns historical quotes whose request text or explanation
// matches every keyword (conjunctive, case-insensitive), most recent order
// date first. An empty keyword list matches everything.
func (r *repo) Search(ctx context.Context, tx *gorm.DB, keywords []string, limit int) ([]quotes.Record, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	query := transaction.WithContext(ctx).
		Table("quotes AS q").
		Select(`q.request_id,
			qr.response AS original_request,
			q.total_amount,
			q.quote_explanation,
			q.job_type,
			q.order_size,
			q.event_type,
			q.order_date`).
		Joins("JOIN quote_requests AS qr ON q.request_id = qr.id")

	for _, term := range keywords {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		pattern := "%" + term + "%"
		query = query.Where(
			"(LOWER(qr.response) LIKE ? OR LOWER(q.quote_explanation) LIKE ?)",
			pattern, pattern,
		)
	}

	var out []quotes.Record
	if err := query.
		Order("q.order_date DESC").
		Limit(limit).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
