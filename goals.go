package fitcalc

import (
	"sort"
)

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func (g Goal) validate() error {
	if err := g.Direction.Validate(); err != nil {
		return err
	}
	if err := checkFinite("currentValue", g.CurrentValue); err != nil {
		return err
	}
	if err := checkFinite("targetValue", g.TargetValue); err != nil {
		return err
	}
	return nil
}

// PercentComplete returns progress toward the target in [0, 100]; exceeding the target reports 100
func PercentComplete(g Goal) (float64, error) {
	if err := g.validate(); err != nil {
		return 0, err
	}
	switch g.Direction {
	case LowerIsBetter:
		if g.CurrentValue <= 0 {
			return 0, nil
		}
		return clamp01(g.TargetValue/g.CurrentValue) * 100, nil
	default:
		if g.TargetValue == 0 {
			if g.CurrentValue >= 0 {
				return 100, nil
			}
			return 0, nil
		}
		return clamp01(g.CurrentValue/g.TargetValue) * 100, nil
	}
}

// OverallProgress is the mean PercentComplete of the goals, 0 for none
func OverallProgress(goals []Goal) (float64, error) {
	if len(goals) == 0 {
		return 0, nil
	}
	var sum float64
	for _, g := range goals {
		p, err := PercentComplete(g)
		if err != nil {
			return 0, err
		}
		sum += p
	}
	return sum / float64(len(goals)), nil
}

type MilestoneStatus struct {
	Value     float64 `json:"value"`
	Completed bool    `json:"completed"`
}

// MilestoneStatuses reports, in input order, which milestones the current value has reached.
// Milestones are expected to be ordered in the direction of progress; the order is not checked.
func MilestoneStatuses(g Goal) ([]MilestoneStatus, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	res := make([]MilestoneStatus, 0, len(g.Milestones))
	for _, m := range g.Milestones {
		if err := checkFinite("milestone", m); err != nil {
			return nil, err
		}
		res = append(res, MilestoneStatus{Value: m, Completed: g.Direction.reached(g.CurrentValue, m)})
	}
	return res, nil
}

// MilestonesOrdered returns true if each milestone is no less favorable than the one before it
func MilestonesOrdered(g Goal) bool {
	for i := 1; i < len(g.Milestones); i++ {
		if g.Direction.better(g.Milestones[i-1], g.Milestones[i]) {
			return false
		}
	}
	return true
}

type GoalSummary struct {
	Name       string            `json:"name"`
	Category   string            `json:"category"`
	Percent    float64           `json:"percent"`
	Completed  bool              `json:"completed"`
	Trend      Trend             `json:"trend"`
	Milestones []MilestoneStatus `json:"milestones,omitempty"`
}

type CategorySummary struct {
	Category  string  `json:"category"`
	Goals     int     `json:"goals"`
	Completed int     `json:"completed"`
	Percent   float64 `json:"percent"`
}

type Summary struct {
	Overall    float64           `json:"overall"`
	Goals      []GoalSummary     `json:"goals"`
	Categories []CategorySummary `json:"categories"`
}

// Summarize aggregates goals into overall, per-goal and per-category progress.
// A goal's trend runs over its history followed by its current value.
// Categories are sorted by name; goals keep their input order.
func Summarize(goals []Goal, opts TrendOptions) (*Summary, error) {
	overall, err := OverallProgress(goals)
	if err != nil {
		return nil, err
	}
	res := &Summary{Overall: overall, Goals: make([]GoalSummary, 0, len(goals))}
	cats := make(map[string]*CategorySummary)
	for _, g := range goals {
		p, err := PercentComplete(g)
		if err != nil {
			return nil, err
		}
		series := append(append(make([]float64, 0, len(g.History)+1), g.History...), g.CurrentValue)
		trend, err := ClassifyTrend(series, g.Direction, opts)
		if err != nil {
			return nil, err
		}
		milestones, err := MilestoneStatuses(g)
		if err != nil {
			return nil, err
		}
		done := p == 100
		res.Goals = append(res.Goals, GoalSummary{
			Name:       g.Name,
			Category:   g.Category,
			Percent:    p,
			Completed:  done,
			Trend:      trend,
			Milestones: milestones,
		})

		c, ok := cats[g.Category]
		if !ok {
			c = &CategorySummary{Category: g.Category}
			cats[g.Category] = c
		}
		c.Goals++
		c.Percent += p
		if done {
			c.Completed++
		}
	}
	for _, c := range cats {
		c.Percent /= float64(c.Goals)
		res.Categories = append(res.Categories, *c)
	}
	sort.Slice(res.Categories, func(i, j int) bool {
		return res.Categories[i].Category < res.Categories[j].Category
	})
	return res, nil
}
