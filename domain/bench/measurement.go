// Package bench holds the measurement types a Routine produces and the
// analysis pipeline consumes.
package bench

import (
	"encoding/json"

	"benchlab/domain/stats"
	"benchlab/internal/errors"
)

// Measurement is one acquisition run: paired iteration counts and
// elapsed wall-clock nanoseconds, one pair per sample rung. Immutable
// once constructed.
type Measurement struct {
	iters []uint64
	times []float64
}

// NewMeasurement validates the routine contract: equal lengths, at
// least two rungs, positive iteration counts and non-negative times.
func NewMeasurement(iters []uint64, times []float64) (*Measurement, error) {
	if len(iters) != len(times) {
		return nil, errors.InvalidInput("iteration and time vectors must have equal length")
	}
	if len(iters) < 2 {
		return nil, errors.InvalidInput("a measurement needs at least two sample rungs")
	}
	for i, n := range iters {
		if n == 0 {
			return nil, errors.InvalidInput("iteration counts must be positive")
		}
		if times[i] < 0 {
			return nil, errors.InvalidInput("elapsed times cannot be negative")
		}
	}
	return &Measurement{iters: iters, times: times}, nil
}

// Len returns the number of sample rungs.
func (m *Measurement) Len() int {
	return len(m.iters)
}

// Iters returns the iteration counts; treat as read-only.
func (m *Measurement) Iters() []uint64 {
	return m.iters
}

// Times returns the elapsed nanoseconds; treat as read-only.
func (m *Measurement) Times() []float64 {
	return m.times
}

// AvgTimes derives the per-iteration times, times[i] / iters[i].
func (m *Measurement) AvgTimes() []float64 {
	avg := make([]float64, len(m.iters))
	for i, n := range m.iters {
		avg[i] = m.times[i] / float64(n)
	}
	return avg
}

// Data returns the bivariate (iters, times) view used by regression.
func (m *Measurement) Data() *stats.Data {
	x := make([]float64, len(m.iters))
	for i, n := range m.iters {
		x[i] = float64(n)
	}
	d, _ := stats.NewData(x, m.times)
	return d
}

// MarshalJSON encodes the measurement as the on-disk sample.json
// shape, a two-element array [iters[], times[]].
func (m *Measurement) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{m.iters, m.times})
}

// UnmarshalJSON decodes the sample.json shape and revalidates it.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "sample file is not a two-element array")
	}
	var iters []uint64
	if err := json.Unmarshal(raw[0], &iters); err != nil {
		return errors.Wrap(err, "sample file has a malformed iteration vector")
	}
	var times []float64
	if err := json.Unmarshal(raw[1], &times); err != nil {
		return errors.Wrap(err, "sample file has a malformed time vector")
	}
	parsed, err := NewMeasurement(iters, times)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}
