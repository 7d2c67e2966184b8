package report

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/salesreport/internal/aggregator"
	"github.com/ginjaninja78/salesreport/internal/types"
)

// Report holds every computed section. It is the single value consumed by
// the renderers.
type Report struct {
	// Source names the input the report was built from (file path or "sample").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// ValidationIssues is filled by the caller with the rejected rows.
	ValidationIssues []types.InvalidRecord `json:"validation_issues" yaml:"validation_issues"`

	ValidRecords       int             `json:"valid_records" yaml:"valid_records"`
	TotalSales         decimal.Decimal `json:"total_sales" yaml:"total_sales"`
	MonthTotals        []MonthTotal    `json:"month_totals" yaml:"month_totals"`
	MostPopular        []PopularItem   `json:"most_popular" yaml:"most_popular"`
	TopRevenue         []RevenueItem   `json:"top_revenue" yaml:"top_revenue"`
	MonthToMonthGrowth []ItemGrowth    `json:"month_to_month_growth" yaml:"month_to_month_growth"`
}

// Build runs every calculator over the same inputs.
func Build(valid []types.ValidRecord, idx *aggregator.Index) *Report {
	return &Report{
		ValidationIssues:   make([]types.InvalidRecord, 0),
		ValidRecords:       len(valid),
		TotalSales:         TotalSales(valid),
		MonthTotals:        MonthWiseTotals(valid),
		MostPopular:        MostPopularPerMonth(idx),
		TopRevenue:         TopRevenuePerMonth(idx),
		MonthToMonthGrowth: MonthToMonthGrowth(idx),
	}
}
