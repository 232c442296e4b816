// Package stats summarizes mark distributions for an exam.
package stats

import (
	"github.com/montanaflynn/stats"
)

// Summary describes the score distribution of one exam.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	PassRate float64 `json:"pass_rate"`
}

// Summarize computes distribution statistics over scores. passMark is the
// threshold a score must reach to count as a pass, out of the exam's
// maximum. An empty score list yields a zero summary rather than an error.
func Summarize(scores []float64, passMark float64) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	data := stats.LoadRawData(scores)

	mean, _ := data.Mean()
	median, _ := data.Median()
	stdDev, _ := data.StandardDeviation()
	min, _ := data.Min()
	max, _ := data.Max()

	passed := 0
	for _, s := range scores {
		if s >= passMark {
			passed++
		}
	}

	return Summary{
		Count:    len(scores),
		Mean:     mean,
		Median:   median,
		StdDev:   stdDev,
		Min:      min,
		Max:      max,
		PassRate: float64(passed) / float64(len(scores)),
	}
}
