package stats

import "github.com/limbo/lifelog/pkg/entity"

// ComputeHeatmap builds the per-day series consumers render as a calendar
// heatmap. Same shape as a trend series; exposed separately because heatmap
// consumers bucket the value into intensity levels instead of plotting it.
func ComputeHeatmap(events []entity.Event, kind entity.Kind, fn ValueFunc, windowDays int, end DateBucket) AggregateSeries {
	return BuildSeries(events, kind, fn, windowDays, end)
}

// HeatLevel maps a day's value to an intensity level for rendering:
// 0 for no activity, then 1-2, 3-5 and 6+ per level.
func HeatLevel(value float64) int {
	switch {
	case value <= 0:
		return 0
	case value <= 2:
		return 1
	case value <= 5:
		return 2
	default:
		return 3
	}
}
