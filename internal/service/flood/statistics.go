package flood

import (
	"math"

	"flowx-relief/internal/domain"
)

// Summarize computes per-metric mean, min, max and population variance over
// a flood's daily readings.
func Summarize(details []domain.FloodDetail) domain.FloodStatistics {
	stats := domain.FloodStatistics{Samples: len(details)}
	if len(details) == 0 {
		return stats
	}

	from, to := details[0].Date, details[0].Date
	river := make([]float64, len(details))
	rain := make([]float64, len(details))
	rising := make([]float64, len(details))
	area := make([]float64, len(details))
	for i, d := range details {
		river[i] = d.RiverLevel
		rain[i] = d.RainFall
		rising[i] = d.WaterRisingRate
		area[i] = d.FloodArea
		if d.Date.Before(from) {
			from = d.Date
		}
		if d.Date.After(to) {
			to = d.Date
		}
	}

	stats.From, stats.To = &from, &to
	stats.RiverLevel = summarize(river)
	stats.RainFall = summarize(rain)
	stats.WaterRisingRate = summarize(rising)
	stats.FloodArea = summarize(area)
	return stats
}

func summarize(values []float64) domain.MetricSummary {
	sum, lo, hi := 0.0, math.Inf(1), math.Inf(-1)
	for _, v := range values {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return domain.MetricSummary{
		Mean:     mean,
		Min:      lo,
		Max:      hi,
		Variance: sq / float64(len(values)),
	}
}
