package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	scores := []float64{40, 50, 60, 70, 80}

	summary := Summarize(scores, 50)

	assert.Equal(t, 5, summary.Count)
	assert.InDelta(t, 60, summary.Mean, 0.001)
	assert.InDelta(t, 60, summary.Median, 0.001)
	assert.InDelta(t, 40, summary.Min, 0.001)
	assert.InDelta(t, 80, summary.Max, 0.001)
	assert.InDelta(t, 0.8, summary.PassRate, 0.001, "4 of 5 scores reach the pass mark")
	assert.Greater(t, summary.StdDev, 0.0)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, 50)
	assert.Equal(t, Summary{}, summary)
}

func TestSummarizeSingleScore(t *testing.T) {
	summary := Summarize([]float64{75}, 50)
	assert.Equal(t, 1, summary.Count)
	assert.InDelta(t, 75, summary.Mean, 0.001)
	assert.InDelta(t, 1.0, summary.PassRate, 0.001)
}
