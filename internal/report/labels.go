package report

import "trade-journal-go/internal/analytics"

// EquityLabel is the dataset label of the equity chart.
func EquityLabel(mode analytics.EquityMode) string {
	if mode == analytics.EquityPerTrade {
		return "P&L per trade ($)"
	}
	return "Equity ($)"
}

// PeriodLabel is the dataset label of the period chart.
func PeriodLabel(mode analytics.GroupMode, metric analytics.Metric) string {
	span := "Daily"
	if mode == analytics.GroupWeek {
		span = "Weekly"
	}
	if metric == analytics.MetricPnL {
		return span + " P&L ($)"
	}
	return span + " Result (%)"
}

// SideLabels are the side chart labels, in data order.
var SideLabels = []string{"LONG", "SHORT"}
