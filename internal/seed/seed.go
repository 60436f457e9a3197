package seed

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/beaverchoice/fulfillment-backend/internal/data/db"
	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/ledgerrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/quotesrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/catalog"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/ledger"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/quotes"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

const (
	// SeedDate is the opening ledger date: the cash float and every
	// initial stock order are recorded on it.
	SeedDate = "2025-01-01"

	openingCash = 50000.0

	inventoryCoverage = 0.4
	inventorySeed     = 137
	stockMin          = 200
	stockMax          = 800
	minLevelMin       = 50
	minLevelMax       = 150
)

// Options points the seeder at its inputs.
type Options struct {
	RequestsCSV string
	QuotesCSV   string
}

// Seeder initializes the database: schema, request/quote history, the
// sampled inventory reference table, and the opening ledger rows.
type Seeder struct {
	db         *gorm.DB
	ledgerRepo ledgerrepo.Repo
	quoteRepo  quotesrepo.Repo
	log        *logger.Logger
}

func New(gormDB *gorm.DB, ledgerRepo ledgerrepo.Repo, quoteRepo quotesrepo.Repo, baseLog *logger.Logger) *Seeder {
	return &Seeder{
		db:         gormDB,
		ledgerRepo: ledgerRepo,
		quoteRepo:  quoteRepo,
		log:        baseLog.With("service", "Seeder"),
	}
}

// Run migrates the schema and seeds everything. It refuses to run twice:
// an existing ledger row means the database is already initialized.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if err := db.AutoMigrateAll(s.db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&ledger.Transaction{}).Count(&count).Error; err != nil {
		return fmt.Errorf("check existing ledger: %w", err)
	}
	if count > 0 {
		s.log.Info("database already seeded, skipping", "ledger_rows", count)
		return nil
	}

	var (
		requests []*quotes.QuoteRequest
		history  []*quotes.Quote
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		requests, err = loadRequests(groupCtx, opts.RequestsCSV)
		return err
	})
	group.Go(func() error {
		var err error
		history, err = loadQuotes(groupCtx, opts.QuotesCSV)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	if err := s.quoteRepo.CreateRequests(ctx, nil, requests); err != nil {
		return fmt.Errorf("seed quote requests: %w", err)
	}
	if err := s.quoteRepo.CreateQuotes(ctx, nil, history); err != nil {
		return fmt.Errorf("seed quotes: %w", err)
	}

	inventory := SampleInventory()
	if err := s.db.WithContext(ctx).Create(&inventory).Error; err != nil {
		return fmt.Errorf("seed inventory table: %w", err)
	}

	// Opening cash, recorded as an itemless sale.
	if _, err := s.ledgerRepo.Append(ctx, nil, nil, ledger.TypeSales, nil, openingCash, SeedDate); err != nil {
		return fmt.Errorf("seed opening cash: %w", err)
	}

	// One stock order per seeded item, dated at the seed date, so the
	// ledger-derived stock matches the reference table exactly.
	for _, item := range inventory {
		name := item.ItemName
		units := item.CurrentStock
		cost := float64(units) * item.UnitPrice
		if _, err := s.ledgerRepo.Append(ctx, nil, &name, ledger.TypeStockOrders, &units, cost, SeedDate); err != nil {
			return fmt.Errorf("seed stock for %q: %w", name, err)
		}
	}

	s.log.Info("database seeded",
		"requests", len(requests),
		"quotes", len(history),
		"inventory_items", len(inventory),
		"opening_cash", openingCash)
	return nil
}

// SampleInventory deterministically selects a coverage fraction of the
// catalog and assigns each selected item a stock level and reorder
// threshold. Same seed, same sample.
func SampleInventory() []catalog.InventoryItem {
	items := catalog.Items()
	rng := rand.New(rand.NewSource(inventorySeed))

	picked := rng.Perm(len(items))[:int(inventoryCoverage*float64(len(items)))]
	sort.Ints(picked)

	out := make([]catalog.InventoryItem, 0, len(picked))
	for _, idx := range picked {
		item := items[idx]
		out = append(out, catalog.InventoryItem{
			ItemName:      item.Name,
			Category:      item.Category,
			UnitPrice:     item.UnitPrice,
			CurrentStock:  stockMin + rng.Intn(stockMax-stockMin),
			MinStockLevel: minLevelMin + rng.Intn(minLevelMax-minLevelMin),
		})
	}
	return out
}

func loadRequests(ctx context.Context, path string) ([]*quotes.QuoteRequest, error) {
	rows, header, err := readCSV(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load requests %q: %w", path, err)
	}

	out := make([]*quotes.QuoteRequest, 0, len(rows))
	for i, row := range rows {
		date := normalizeDate(field(row, header, "request_date"))
		if date == "" {
			// Quote rows join requests by position, so dropping this
			// row would orphan its quote. Keep it on the seed date.
			date = SeedDate
		}
		out = append(out, &quotes.QuoteRequest{
			ID:          int64(i + 1),
			Job:         field(row, header, "job"),
			Event:       field(row, header, "event"),
			NeedSize:    field(row, header, "need_size"),
			Request:     field(row, header, "request"),
			Response:    field(row, header, "response"),
			RequestDate: date,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RequestDate < out[j].RequestDate })
	return out, nil
}

func loadQuotes(ctx context.Context, path string) ([]*quotes.Quote, error) {
	rows, header, err := readCSV(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load quotes %q: %w", path, err)
	}

	out := make([]*quotes.Quote, 0, len(rows))
	for i, row := range rows {
		total, _ := strconv.ParseFloat(field(row, header, "total_amount"), 64)
		meta := parseMetadata(field(row, header, "request_metadata"))
		out = append(out, &quotes.Quote{
			RequestID:        int64(i + 1),
			TotalAmount:      total,
			QuoteExplanation: field(row, header, "quote_explanation"),
			OrderDate:        SeedDate,
			JobType:          meta["job_type"],
			OrderSize:        meta["order_size"],
			EventType:        meta["event_type"],
		})
	}
	return out, nil
}

// parseMetadata decodes the request_metadata column. The history files
// carry it as a Python dict literal, which differs from JSON only in its
// quoting.
func parseMetadata(raw string) map[string]string {
	out := map[string]string{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}
	normalized := strings.ReplaceAll(raw, `'`, `"`)
	var decoded map[string]any
	if err := json.Unmarshal([]byte(normalized), &decoded); err != nil {
		return out
	}
	for k, v := range decoded {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func readCSV(ctx context.Context, path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func field(row []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// normalizeDate accepts either ISO dates or the m/d/yy form the history
// files use. Unparsable dates yield "".
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", "1/2/06", "01/02/06", "1/2/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
