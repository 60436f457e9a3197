package catalog

import (
	"sort"
	"strings"
)

const (
	CategoryPaper       = "paper"
	CategoryProduct     = "product"
	CategoryLargeFormat = "large_format"
	CategorySpecialty   = "specialty"
)

// Item is immutable reference data: one sellable SKU with its base price.
type Item struct {
	Name      string
	Category  string
	UnitPrice float64
}

// InventoryItem is the seeded reference snapshot persisted in the
// `inventory` table. It is never updated after seeding; live stock is
// always recomputed from the transactions ledger.
type InventoryItem struct {
	ItemName      string  `gorm:"column:item_name;primaryKey" json:"item_name"`
	Category      string  `gorm:"column:category;not null" json:"category"`
	UnitPrice     float64 `gorm:"column:unit_price;not null" json:"unit_price"`
	CurrentStock  int     `gorm:"column:current_stock;not null" json:"current_stock"`
	MinStockLevel int     `gorm:"column:min_stock_level;not null" json:"min_stock_level"`
}

func (InventoryItem) TableName() string { return "inventory" }

var items = []Item{
	// Paper types, priced per sheet unless specified.
	{"A4 paper", CategoryPaper, 0.05},
	{"Letter-sized paper", CategoryPaper, 0.06},
	{"Cardstock", CategoryPaper, 0.15},
	{"Colored paper", CategoryPaper, 0.10},
	{"Glossy paper", CategoryPaper, 0.20},
	{"Matte paper", CategoryPaper, 0.18},
	{"Recycled paper", CategoryPaper, 0.08},
	{"Eco-friendly paper", CategoryPaper, 0.12},
	{"Poster paper", CategoryPaper, 0.25},
	{"Banner paper", CategoryPaper, 0.30},
	{"Kraft paper", CategoryPaper, 0.10},
	{"Construction paper", CategoryPaper, 0.07},
	{"Wrapping paper", CategoryPaper, 0.15},
	{"Glitter paper", CategoryPaper, 0.22},
	{"Decorative paper", CategoryPaper, 0.18},
	{"Letterhead paper", CategoryPaper, 0.12},
	{"Legal-size paper", CategoryPaper, 0.08},
	{"Crepe paper", CategoryPaper, 0.05},
	{"Photo paper", CategoryPaper, 0.25},
	{"Uncoated paper", CategoryPaper, 0.06},
	{"Butcher paper", CategoryPaper, 0.10},
	{"Heavyweight paper", CategoryPaper, 0.20},
	{"Standard copy paper", CategoryPaper, 0.04},
	{"Bright-colored paper", CategoryPaper, 0.12},
	{"Patterned paper", CategoryPaper, 0.15},

	// Product types, priced per unit.
	{"Paper plates", CategoryProduct, 0.10},
	{"Paper cups", CategoryProduct, 0.08},
	{"Paper napkins", CategoryProduct, 0.02},
	{"Disposable cups", CategoryProduct, 0.10},
	{"Table covers", CategoryProduct, 1.50},
	{"Envelopes", CategoryProduct, 0.05},
	{"Sticky notes", CategoryProduct, 0.03},
	{"Notepads", CategoryProduct, 2.00},
	{"Invitation cards", CategoryProduct, 0.50},
	{"Flyers", CategoryProduct, 0.15},
	{"Party streamers", CategoryProduct, 0.05},
	{"Decorative adhesive tape (washi tape)", CategoryProduct, 0.20},
	{"Paper party bags", CategoryProduct, 0.25},
	{"Name tags with lanyards", CategoryProduct, 0.75},
	{"Presentation folders", CategoryProduct, 0.50},

	// Large-format items.
	{"Large poster paper (24x36 inches)", CategoryLargeFormat, 1.00},
	{"Rolls of banner paper (36-inch width)", CategoryLargeFormat, 2.50},

	// Specialty papers.
	{"100 lb cover stock", CategorySpecialty, 0.50},
	{"80 lb text paper", CategorySpecialty, 0.40},
	{"250 gsm cardstock", CategorySpecialty, 0.30},
	{"220 gsm poster paper", CategorySpecialty, 0.35},
}

var synonyms = map[string]string{
	"heavy cardstock":   "Cardstock",
	"card stock":        "Cardstock",
	"colored cardstock": "Cardstock",
	"glossy a4 paper":   "Glossy paper",
	"a4 glossy paper":   "Glossy paper",
	"a4 paper":          "A4 paper",
	"letter paper":      "Letter-sized paper",
	"letter sized paper": "Letter-sized paper",
	"eco paper":         "Eco-friendly paper",
	"recycled":          "Recycled paper",
	"poster stock":      "Poster paper",
	"banner":            "Banner paper",
}

var (
	canonicalNames      []string
	lowerCanonicalNames []string
	priceByLowerName    map[string]float64
)

func init() {
	priceByLowerName = make(map[string]float64, len(items))
	canonicalNames = make([]string, 0, len(items))
	for _, it := range items {
		canonicalNames = append(canonicalNames, it.Name)
		priceByLowerName[strings.ToLower(it.Name)] = it.UnitPrice
	}
	sort.Strings(canonicalNames)
	lowerCanonicalNames = make([]string, len(canonicalNames))
	for i, name := range canonicalNames {
		lowerCanonicalNames[i] = strings.ToLower(name)
	}
}

// Items returns the full catalog in declaration order.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Names returns every canonical item name, sorted.
func Names() []string {
	out := make([]string, len(canonicalNames))
	copy(out, canonicalNames)
	return out
}

// UnitPrice looks up the catalog price for a canonical item name.
func UnitPrice(name string) (float64, bool) {
	p, ok := priceByLowerName[strings.ToLower(name)]
	return p, ok
}
