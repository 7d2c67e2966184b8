package report

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// OrderStats summarizes the individual order quantities of one entry.
type OrderStats struct {
	Min  float64 `json:"min_orders" yaml:"min_orders"`
	Max  float64 `json:"max_orders" yaml:"max_orders"`
	Mean float64 `json:"avg_orders" yaml:"avg_orders"`
}

// ComputeOrderStats returns min, max and mean of the given quantities.
// An empty slice yields zero stats.
func ComputeOrderStats(orders []decimal.Decimal) OrderStats {
	if len(orders) == 0 {
		return OrderStats{}
	}

	data := toFloats(orders)
	return OrderStats{
		Min:  floats.Min(data),
		Max:  floats.Max(data),
		Mean: stat.Mean(data, nil),
	}
}

func toFloats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}
