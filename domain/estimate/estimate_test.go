package estimate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchlab/domain/stats"
)

func TestNewBuildsOneEstimatePerDistribution(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64(i)
	}
	dists := Distributions{
		Mean:   stats.NewDistribution(values),
		Median: stats.NewDistribution(values),
	}
	points := map[Statistic]float64{Mean: 500, Median: 499}

	ests := New(dists, points, 0.95)
	require.Len(t, ests, 2)

	mean := ests[Mean]
	assert.Equal(t, 500.0, mean.PointEstimate)
	assert.Equal(t, 0.95, mean.ConfidenceInterval.ConfidenceLevel)
	assert.Less(t, mean.ConfidenceInterval.LowerBound, mean.ConfidenceInterval.UpperBound)
	assert.Greater(t, mean.StandardError, 0.0)
}

func TestEstimateJSONShape(t *testing.T) {
	e := Estimate{
		ConfidenceInterval: ConfidenceInterval{
			ConfidenceLevel: 0.95,
			LowerBound:      1.5,
			UpperBound:      2.5,
		},
		PointEstimate: 2,
		StandardError: 0.25,
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"confidence_interval":{"confidence_level":0.95,"lower_bound":1.5,"upper_bound":2.5},"point_estimate":2,"standard_error":0.25}`,
		string(data))
}

func TestEstimatesJSONKeysAreLowercaseNames(t *testing.T) {
	ests := Estimates{
		Mean:         {},
		MedianAbsDev: {},
	}
	data, err := json.Marshal(ests)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "mean")
	assert.Contains(t, raw, "median_abs_dev")
}

func TestStatisticSets(t *testing.T) {
	assert.Equal(t, []Statistic{Mean, Median, MedianAbsDev, StdDev}, Univariate())
	assert.Equal(t, []Statistic{Mean, Median, MedianAbsDev, StdDev, Slope}, All())
}
