package finance

import "sort"

// TopPerforming orders per-business results by net profit, breaking ties on
// revenue, and returns at most n entries. The sort is stable, so entities
// equal on both keys keep their input order. Empty input yields an empty
// slice, never an error.
func TopPerforming(results []BusinessMetrics, n int) []BusinessMetrics {
	ranked := append([]BusinessMetrics(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].NetProfit != ranked[j].NetProfit {
			return ranked[i].NetProfit > ranked[j].NetProfit
		}
		return ranked[i].TotalRevenue > ranked[j].TotalRevenue
	})
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
