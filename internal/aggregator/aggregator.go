// =============================================================================
// Sales Ledger Report - Month-Item Aggregator
// =============================================================================
//
// This module groups valid records into a month x item index. Each entry
// accumulates the total quantity, the total revenue and the quantity of each
// individual order that contributed to it.
//
// GROUPING LOGIC:
//   Records are visited once, in input order. An entry is created the first
//   time its (month, item) pair is seen; pairs that never occur are absent,
//   not zero.
//
// ORDERING:
//   Go map iteration order is random, so the index remembers the order in
//   which items first appeared in each month. Readers that need a stable tie
//   break use ItemsInOrder; readers that need sorted output use Months and
//   Items.
//
// The index is read-only once Aggregate returns.
//
// =============================================================================

package aggregator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/salesreport/internal/types"
)

// =============================================================================
// INDEX STRUCTURES
// =============================================================================

// Entry is the aggregate for one (month, item) pair.
type Entry struct {
	// TotalQuantity is the sum of Orders.
	TotalQuantity decimal.Decimal

	// TotalRevenue is the sum of the contributing total prices.
	TotalRevenue decimal.Decimal

	// Orders holds the quantity of every contributing record, in input order.
	Orders []decimal.Decimal
}

// monthBucket holds the entries of a single month.
type monthBucket struct {
	entries   map[string]*Entry
	itemOrder []string // first occurrence order
}

// Index maps month -> item -> Entry.
type Index struct {
	months   map[string]*monthBucket
	allItems map[string]struct{}
	records  int
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate builds the index from valid records in a single pass.
//
// PARAMETERS:
//   - valid: Records that passed validation, in input order.
//
// RETURNS:
//   - A populated Index. An empty input yields an empty index.
func Aggregate(valid []types.ValidRecord) *Index {
	idx := &Index{
		months:   make(map[string]*monthBucket),
		allItems: make(map[string]struct{}),
	}

	for _, rec := range valid {
		idx.add(rec)
	}

	return idx
}

func (idx *Index) add(rec types.ValidRecord) {
	month := rec.MonthKey()

	bucket, exists := idx.months[month]
	if !exists {
		bucket = &monthBucket{entries: make(map[string]*Entry)}
		idx.months[month] = bucket
	}

	entry, exists := bucket.entries[rec.Item]
	if !exists {
		entry = &Entry{
			TotalQuantity: decimal.Zero,
			TotalRevenue:  decimal.Zero,
		}
		bucket.entries[rec.Item] = entry
		bucket.itemOrder = append(bucket.itemOrder, rec.Item)
	}

	entry.TotalQuantity = entry.TotalQuantity.Add(rec.Quantity)
	entry.TotalRevenue = entry.TotalRevenue.Add(rec.TotalPrice)
	entry.Orders = append(entry.Orders, rec.Quantity)

	idx.allItems[rec.Item] = struct{}{}
	idx.records++
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Months returns every month key in ascending order.
func (idx *Index) Months() []string {
	months := make([]string, 0, len(idx.months))
	for month := range idx.months {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}

// Items returns the union of items across all months, in ascending order.
func (idx *Index) Items() []string {
	items := make([]string, 0, len(idx.allItems))
	for item := range idx.allItems {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// ItemsInOrder returns the items of a month in first-encountered order.
func (idx *Index) ItemsInOrder(month string) []string {
	bucket, exists := idx.months[month]
	if !exists {
		return nil
	}
	out := make([]string, len(bucket.itemOrder))
	copy(out, bucket.itemOrder)
	return out
}

// Entry looks up a (month, item) pair.
func (idx *Index) Entry(month, item string) (Entry, bool) {
	bucket, exists := idx.months[month]
	if !exists {
		return Entry{}, false
	}
	entry, exists := bucket.entries[item]
	if !exists {
		return Entry{}, false
	}
	return *entry, true
}

// Revenue returns the revenue of a pair, or zero when the pair is absent.
func (idx *Index) Revenue(month, item string) decimal.Decimal {
	entry, ok := idx.Entry(month, item)
	if !ok {
		return decimal.Zero
	}
	return entry.TotalRevenue
}

// RecordCount returns the number of records folded into the index.
func (idx *Index) RecordCount() int {
	return idx.records
}

// Empty reports whether the index holds no entries.
func (idx *Index) Empty() bool {
	return len(idx.months) == 0
}
