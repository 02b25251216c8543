package fitcalc

import (
	"math"
	"sort"
	"time"
)

const (
	defaultTrendWindow    = 2
	defaultStreakInterval = 1
)

// Delta compares two observations of the same series
type Delta struct {
	Absolute      float64  `json:"absolute"`
	IsImprovement bool     `json:"isImprovement"`
	Percentage    *float64 `json:"percentage"`
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidValueError{Field: field, Value: v}
	}
	return nil
}

// ComputeDelta returns the change from previous to current; Percentage is nil when previous is zero
func ComputeDelta(current, previous float64, dir Direction) (Delta, error) {
	if err := dir.Validate(); err != nil {
		return Delta{}, err
	}
	if err := checkFinite("current", current); err != nil {
		return Delta{}, err
	}
	if err := checkFinite("previous", previous); err != nil {
		return Delta{}, err
	}
	d := Delta{
		Absolute:      math.Abs(current - previous),
		IsImprovement: dir.better(current, previous),
	}
	if previous != 0 {
		d.Percentage = ptr((current - previous) / previous * 100)
	}
	return d, nil
}

// TrendOptions tunes ClassifyTrend; zero values select a window of 2 and an epsilon of 0
type TrendOptions struct {
	Window  int     `json:"window" yaml:"window"`
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
}

func (o TrendOptions) withDefaults() (TrendOptions, error) {
	if o.Window == 0 {
		o.Window = defaultTrendWindow
	}
	if o.Window < 2 {
		return o, &InvalidValueError{Field: "window", Value: float64(o.Window)}
	}
	if err := checkValue("epsilon", o.Epsilon); err != nil {
		return o, err
	}
	return o, nil
}

// ClassifyTrend compares the first and last of the most recent window values.
// Series with fewer than two points are stable.
func ClassifyTrend(series []float64, dir Direction, opts TrendOptions) (Trend, error) {
	if err := dir.Validate(); err != nil {
		return "", err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return "", err
	}
	for _, v := range series {
		if err := checkFinite("series", v); err != nil {
			return "", err
		}
	}
	if len(series) < 2 {
		return Stable, nil
	}
	if len(series) > opts.Window {
		series = series[len(series)-opts.Window:]
	}
	first, last := series[0], series[len(series)-1]
	switch {
	case math.Abs(last-first) <= opts.Epsilon:
		return Stable, nil
	case dir.better(last, first):
		return Improving, nil
	default:
		return Declining, nil
	}
}

// CurrentBest returns the most favorable entry in the history, preferring the
// most recent on ties, or nil for an empty history
func CurrentBest(history []PersonalRecordEntry, dir Direction) (*PersonalRecordEntry, error) {
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	var best *PersonalRecordEntry
	for i := range history {
		e := history[i]
		if err := checkFinite("value", e.Value); err != nil {
			return nil, err
		}
		switch {
		case best == nil,
			dir.better(e.Value, best.Value),
			e.Value == best.Value && !e.Date.Before(best.Date):
			best = &e
		}
	}
	return best, nil
}

// BestByExercise groups entries by name and returns the current best of each,
// judged by the direction of the group's most recent entry
func BestByExercise(entries []PersonalRecordEntry) (map[string]PersonalRecordEntry, error) {
	groups := make(map[string][]PersonalRecordEntry)
	for _, e := range entries {
		if err := e.Direction.Validate(); err != nil {
			return nil, err
		}
		groups[e.Name] = append(groups[e.Name], e)
	}
	res := make(map[string]PersonalRecordEntry, len(groups))
	for name, history := range groups {
		latest := history[0]
		for _, e := range history[1:] {
			if !e.Date.Before(latest.Date) {
				latest = e
			}
		}
		best, err := CurrentBest(history, latest.Direction)
		if err != nil {
			return nil, err
		}
		res[name] = *best
	}
	return res, nil
}

// ImprovementOverPrevious compares an entry with its previous best, or returns nil if it has none
func ImprovementOverPrevious(entry PersonalRecordEntry) (*Delta, error) {
	if entry.PreviousBest == nil {
		return nil, nil
	}
	d, err := ComputeDelta(entry.Value, *entry.PreviousBest, entry.Direction)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Streak holds run lengths in distinct days
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// dayNumber returns the calendar day of t, in t's own location, as days since the epoch
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func days(dates []time.Time) []int64 {
	res := make([]int64, 0, len(dates))
	for _, t := range dates {
		res = append(res, dayNumber(t))
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	// collapse same-day activity
	n := 0
	for i, d := range res {
		if i == 0 || d != res[n-1] {
			res[n] = d
			n++
		}
	}
	return res[:n]
}

// ComputeStreak returns the longest run of dates no more than intervalDays apart,
// and the run ending at the last date. An intervalDays of zero means one day.
func ComputeStreak(dates []time.Time, intervalDays int) (Streak, error) {
	if intervalDays < 0 {
		return Streak{}, &InvalidValueError{Field: "interval", Value: float64(intervalDays)}
	}
	if intervalDays == 0 {
		intervalDays = defaultStreakInterval
	}
	var s Streak
	ds := days(dates)
	for i := range ds {
		if i > 0 && ds[i]-ds[i-1] <= int64(intervalDays) {
			s.Current++
		} else {
			s.Current = 1
		}
		if s.Current > s.Longest {
			s.Longest = s.Current
		}
	}
	return s, nil
}

// ComputeStreakAsOf is ComputeStreak with the current run broken when asOf is
// more than one interval past the last date
func ComputeStreakAsOf(dates []time.Time, intervalDays int, asOf time.Time) (Streak, error) {
	s, err := ComputeStreak(dates, intervalDays)
	if err != nil || len(dates) == 0 {
		return s, err
	}
	if intervalDays == 0 {
		intervalDays = defaultStreakInterval
	}
	ds := days(dates)
	if dayNumber(asOf)-ds[len(ds)-1] > int64(intervalDays) {
		s.Current = 0
	}
	return s, nil
}
