// =============================================================================
// Sales Ledger Report - Report Calculators
// =============================================================================
//
// This module derives the report sections from validated records and from
// the month x item index:
//   - TotalSales          sum of every valid total price
//   - MonthWiseTotals     per-month sum, ascending by month
//   - MostPopularPerMonth item with the greatest quantity, plus order stats
//   - TopRevenuePerMonth  item with the greatest revenue
//   - MonthToMonthGrowth  revenue growth between adjacent months, per item
//
// TIE BREAKING:
//   Only a strictly greater value replaces the current leader, so the item
//   first encountered in the month wins ties.
//
// All calculators are pure; calling them twice on the same index yields the
// same values.
//
// =============================================================================

package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/salesreport/internal/aggregator"
	"github.com/ginjaninja78/salesreport/internal/types"
)

var hundred = decimal.NewFromInt(100)

// =============================================================================
// SECTION TYPES
// =============================================================================

// MonthTotal is the revenue of one month.
type MonthTotal struct {
	Month string          `json:"month" yaml:"month"`
	Total decimal.Decimal `json:"total" yaml:"total"`
}

// PopularItem is the best-selling item of a month by quantity.
type PopularItem struct {
	Month         string          `json:"month" yaml:"month"`
	Item          string          `json:"item" yaml:"item"`
	TotalQuantity decimal.Decimal `json:"total_quantity" yaml:"total_quantity"`
	Orders        OrderStats      `json:"orders" yaml:"orders"`
}

// RevenueItem is the highest-revenue item of a month.
type RevenueItem struct {
	Month   string          `json:"month" yaml:"month"`
	Item    string          `json:"item" yaml:"item"`
	Revenue decimal.Decimal `json:"revenue" yaml:"revenue"`
}

// GrowthStep is the growth of one item between two adjacent months.
type GrowthStep struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Growth Growth `json:"growth" yaml:"growth"`
}

// ItemGrowth lists the growth steps of one item, in month order.
type ItemGrowth struct {
	Item  string       `json:"item" yaml:"item"`
	Steps []GrowthStep `json:"steps" yaml:"steps"`
}

// =============================================================================
// CALCULATORS
// =============================================================================

// TotalSales sums the total price of every valid record.
func TotalSales(valid []types.ValidRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range valid {
		total = total.Add(rec.TotalPrice)
	}
	return total
}

// MonthWiseTotals sums total price per month key, sorted ascending by month.
func MonthWiseTotals(valid []types.ValidRecord) []MonthTotal {
	sums := make(map[string]decimal.Decimal)
	for _, rec := range valid {
		month := rec.MonthKey()
		if current, ok := sums[month]; ok {
			sums[month] = current.Add(rec.TotalPrice)
		} else {
			sums[month] = rec.TotalPrice
		}
	}

	totals := make([]MonthTotal, 0, len(sums))
	for month, total := range sums {
		totals = append(totals, MonthTotal{Month: month, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month < totals[j].Month
	})

	return totals
}

// MostPopularPerMonth picks, for every month, the item with the greatest
// total quantity and summarizes its order sizes.
func MostPopularPerMonth(idx *aggregator.Index) []PopularItem {
	result := make([]PopularItem, 0)

	for _, month := range idx.Months() {
		var best *PopularItem
		var bestOrders []decimal.Decimal

		for _, item := range idx.ItemsInOrder(month) {
			entry, _ := idx.Entry(month, item)
			if best == nil || entry.TotalQuantity.GreaterThan(best.TotalQuantity) {
				best = &PopularItem{
					Month:         month,
					Item:          item,
					TotalQuantity: entry.TotalQuantity,
				}
				bestOrders = entry.Orders
			}
		}

		if best == nil {
			continue
		}
		best.Orders = ComputeOrderStats(bestOrders)
		result = append(result, *best)
	}

	return result
}

// TopRevenuePerMonth picks, for every month, the item with the greatest
// total revenue.
func TopRevenuePerMonth(idx *aggregator.Index) []RevenueItem {
	result := make([]RevenueItem, 0)

	for _, month := range idx.Months() {
		var best *RevenueItem

		for _, item := range idx.ItemsInOrder(month) {
			entry, _ := idx.Entry(month, item)
			if best == nil || entry.TotalRevenue.GreaterThan(best.Revenue) {
				best = &RevenueItem{
					Month:   month,
					Item:    item,
					Revenue: entry.TotalRevenue,
				}
			}
		}

		if best != nil {
			result = append(result, *best)
		}
	}

	return result
}

// MonthToMonthGrowth computes revenue growth for every item in the union of
// items, over every pair of adjacent months present in the data. A missing
// entry counts as zero revenue; zero previous revenue yields NotApplicable.
func MonthToMonthGrowth(idx *aggregator.Index) []ItemGrowth {
	months := idx.Months()
	items := idx.Items()
	result := make([]ItemGrowth, 0, len(items))

	for _, item := range items {
		growth := ItemGrowth{Item: item, Steps: make([]GrowthStep, 0)}

		for i := 1; i < len(months); i++ {
			prev := idx.Revenue(months[i-1], item)
			curr := idx.Revenue(months[i], item)

			growth.Steps = append(growth.Steps, GrowthStep{
				From:   months[i-1],
				To:     months[i],
				Growth: ComputeGrowth(prev, curr),
			})
		}

		result = append(result, growth)
	}

	return result
}

// ComputeGrowth returns (curr - prev) / prev * 100, or NotApplicable when
// prev is zero.
func ComputeGrowth(prev, curr decimal.Decimal) Growth {
	if prev.IsZero() {
		return NotApplicable()
	}
	return Percent(curr.Sub(prev).Div(prev).Mul(hundred))
}
