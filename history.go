package fitcalc

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ValidateHistory validates every snapshot and requires strictly increasing timestamps
func ValidateHistory(history []MeasurementSnapshot) error {
	var last time.Time
	for i, s := range history {
		if err := ValidateSnapshot(s); err != nil {
			return err
		}
		if i > 0 && !s.Timestamp.After(last) {
			return &InvalidValueError{Field: "timestamp", Value: float64(s.Timestamp.Unix())}
		}
		last = s.Timestamp
	}
	return nil
}

// WeightDirection returns which way body weight should move for the goal
func (g WeightGoal) WeightDirection() Direction {
	switch g {
	case GainWeight, MuscleGain:
		return HigherIsBetter
	default:
		return LowerIsBetter
	}
}

// SeriesReport describes how one measurement moved across a history
type SeriesReport struct {
	Direction Direction `json:"direction"`
	Latest    *float64  `json:"latest"`
	Change    *Delta    `json:"change"`
	Trend     Trend     `json:"trend"`
}

type HistoryReport struct {
	Results []*CalculationResult `json:"results"`
	Weight  SeriesReport         `json:"weight"`
	BodyFat SeriesReport         `json:"bodyFat"`
}

type Reporter struct {
	config *Config
}

func NewReporter(config *Config) *Reporter {
	return &Reporter{config: config}
}

func (r *Reporter) series(values []float64, dir Direction) (SeriesReport, error) {
	res := SeriesReport{Direction: dir, Trend: Stable}
	if len(values) == 0 {
		return res, nil
	}
	res.Latest = ptr(values[len(values)-1])
	if len(values) > 1 {
		d, err := ComputeDelta(values[len(values)-1], values[len(values)-2], dir)
		if err != nil {
			return res, err
		}
		res.Change = &d
	}
	trend, err := ClassifyTrend(values, dir, r.config.Trend)
	if err != nil {
		return res, err
	}
	res.Trend = trend
	return res, nil
}

// Report calculates every snapshot in the history and summarizes weight and body fat movement
func (r *Reporter) Report(ctx context.Context, person Person, history []MeasurementSnapshot) (*HistoryReport, error) {
	if err := ValidateHistory(history); err != nil {
		return nil, err
	}
	params := r.config.Params()

	// results are written by index so the output keeps the history's order
	results := make([]*CalculationResult, len(history))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(max(1, r.config.Report.Concurrency))
	for i := range history {
		i := i
		grp.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := Calculate(history[i], person, params)
			if err != nil {
				return err
			}
			log.Debug().Time("timestamp", res.Timestamp).Int("index", i).Msg("calculate")
			results[i] = res
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var weights, fats []float64
	for i, s := range history {
		m, err := s.metric()
		if err != nil {
			return nil, err
		}
		if m.Weight != nil {
			weights = append(weights, *m.Weight)
		}
		if results[i].BodyFat != nil {
			fats = append(fats, *results[i].BodyFat)
		}
	}

	weight, err := r.series(weights, params.Goal.WeightDirection())
	if err != nil {
		return nil, err
	}
	fat, err := r.series(fats, LowerIsBetter)
	if err != nil {
		return nil, err
	}
	log.Info().Int("snapshots", len(history)).Str("weight", string(weight.Trend)).Str("bodyFat", string(fat.Trend)).Msg("report")
	return &HistoryReport{Results: results, Weight: weight, BodyFat: fat}, nil
}
