package fitcalc

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	sessionName = "fitcalc"
	unitsKey    = "units"
)

// httpError maps invalid caller input to 400 and leaves everything else to echo
func httpError(err error) error {
	if IsInvalidInput(err) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// preferredUnits returns the session's unit system, falling back to the configured default
func preferredUnits(c echo.Context, cfg *Config) UnitSystem {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return cfg.Units
	}
	if u, ok := sess.Values[unitsKey].(string); ok {
		return UnitSystem(u)
	}
	return cfg.Units
}

type Preferences struct {
	Units UnitSystem `json:"units"`
}

// PreferencesHandler returns the unit system used for snapshots that do not name one
func PreferencesHandler(cfg *Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, Preferences{Units: preferredUnits(c, cfg)})
	}
}

// UpdatePreferencesHandler stores the preferred unit system in the session
func UpdatePreferencesHandler(cfg *Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p Preferences
		if err := bind(c, &p); err != nil {
			return err
		}
		if err := p.Units.Validate(); err != nil {
			return httpError(err)
		}
		sess, err := session.Get(sessionName, c)
		if err != nil {
			return err
		}
		sess.Values[unitsKey] = string(p.Units)
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return err
		}
		log.Info().Str("units", string(p.Units)).Msg("preferences")
		return c.JSON(http.StatusOK, p)
	}
}

type MetricsRequest struct {
	Snapshot MeasurementSnapshot `json:"snapshot"`
	Person   Person              `json:"person"`
	Activity ActivityLevel       `json:"activity"`
	Goal     WeightGoal          `json:"goal"`
	Rounded  bool                `json:"rounded"`
}

// MetricsHandler calculates every metric for one snapshot
func MetricsHandler(cfg *Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req MetricsRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		params := cfg.Params()
		if req.Activity != "" {
			params.Activity = req.Activity
		}
		if req.Goal != "" {
			params.Goal = req.Goal
		}
		if req.Snapshot.Units == "" {
			req.Snapshot.Units = preferredUnits(c, cfg)
		}
		if req.Snapshot.Timestamp.IsZero() {
			req.Snapshot.Timestamp = time.Now().UTC()
		}
		res, err := Calculate(req.Snapshot, req.Person, params)
		if err != nil {
			return httpError(err)
		}
		if req.Rounded {
			r := res.Rounded()
			res = &r
		}
		return c.JSON(http.StatusOK, res)
	}
}

type DeltaRequest struct {
	Current   float64   `json:"current"`
	Previous  float64   `json:"previous"`
	Direction Direction `json:"direction"`
}

// DeltaHandler compares two observations
func DeltaHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req DeltaRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		d, err := ComputeDelta(req.Current, req.Previous, req.Direction)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, d)
	}
}

type TrendRequest struct {
	Series    []float64     `json:"series"`
	Direction Direction     `json:"direction"`
	Options   *TrendOptions `json:"options"`
}

type TrendResponse struct {
	Trend Trend `json:"trend"`
}

// TrendHandler classifies the tail of a series
func TrendHandler(cfg *Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req TrendRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		opts := cfg.Trend
		if req.Options != nil {
			opts = *req.Options
		}
		t, err := ClassifyTrend(req.Series, req.Direction, opts)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, TrendResponse{Trend: t})
	}
}

type BestRequest struct {
	Entries []PersonalRecordEntry `json:"entries"`
}

type BestResponse struct {
	Best        PersonalRecordEntry `json:"best"`
	Improvement *Delta              `json:"improvement"`
}

// BestHandler returns the current best per exercise with its improvement over the previous best
func BestHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req BestRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		bests, err := BestByExercise(req.Entries)
		if err != nil {
			return httpError(err)
		}
		res := make(map[string]BestResponse, len(bests))
		for name, best := range bests {
			imp, err := ImprovementOverPrevious(best)
			if err != nil {
				return httpError(err)
			}
			res[name] = BestResponse{Best: best, Improvement: imp}
		}
		return c.JSON(http.StatusOK, res)
	}
}

type StreakRequest struct {
	Dates        []time.Time `json:"dates"`
	IntervalDays *int        `json:"intervalDays"`
	AsOf         *time.Time  `json:"asOf"`
}

// StreakHandler computes the current and longest activity streaks
func StreakHandler(cfg *Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req StreakRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		interval := cfg.Streak.IntervalDays
		if req.IntervalDays != nil {
			interval = *req.IntervalDays
		}
		var (
			s   Streak
			err error
		)
		if req.AsOf != nil {
			s, err = ComputeStreakAsOf(req.Dates, interval, *req.AsOf)
		} else {
			s, err = ComputeStreak(req.Dates, interval)
		}
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, s)
	}
}

type GoalsRequest struct {
	Goals []Goal `json:"goals"`
}

// GoalsHandler summarizes goal progress
func GoalsHandler(cfg *Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req GoalsRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		sum, err := Summarize(req.Goals, cfg.Trend)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, sum)
	}
}

type ReportRequest struct {
	Person  Person                `json:"person"`
	History []MeasurementSnapshot `json:"history"`
}

// ReportHandler calculates a measurement history
func ReportHandler(cfg *Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ReportRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		units := preferredUnits(c, cfg)
		for i := range req.History {
			if req.History[i].Units == "" {
				req.History[i].Units = units
			}
		}
		res, err := NewReporter(cfg).Report(c.Request().Context(), req.Person, req.History)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, res)
	}
}

type LambdaFunc func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// LambdaHandler proxies API Gateway events to the echo engine
func LambdaHandler(adapter *echoadapter.EchoLambda) LambdaFunc {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		log.Info().Str("method", req.HTTPMethod).Str("path", req.Path).Msg("lambda")
		return adapter.ProxyWithContext(ctx, req)
	}
}
