package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/bzimmer/fitcalc"
)

func config(c *cli.Context) (*fitcalc.Config, error) {
	cfg, err := fitcalc.DefaultConfig()
	if err != nil {
		return nil, err
	}
	if !c.IsSet("config") {
		log.Debug().Str("file", "etc/fitcalc.json").Msg("config")
		return cfg, nil
	}
	log.Info().Str("file", c.String("config")).Msg("config")
	val, err := os.ReadFile(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err = cfg.Merge(val, fitcalc.FormatOf(c.String("config"))); err != nil {
		return nil, err
	}
	return cfg, nil
}

// input decodes the JSON or YAML document named by the `input` flag
func input(c *cli.Context, v any) error {
	name := c.String("input")
	val, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if err = fitcalc.Unmarshal(val, fitcalc.FormatOf(name), v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func encode(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func metrics(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	var doc struct {
		Snapshot fitcalc.MeasurementSnapshot `json:"snapshot" yaml:"snapshot"`
		Person   fitcalc.Person              `json:"person" yaml:"person"`
	}
	if err = input(c, &doc); err != nil {
		return err
	}
	params := cfg.Params()
	if c.IsSet("activity") {
		params.Activity = fitcalc.ActivityLevel(c.String("activity"))
	}
	if c.IsSet("goal") {
		params.Goal = fitcalc.WeightGoal(c.String("goal"))
	}
	if doc.Snapshot.Units == "" {
		doc.Snapshot.Units = cfg.Units
	}
	if doc.Snapshot.Timestamp.IsZero() {
		doc.Snapshot.Timestamp = time.Now().UTC()
	}
	res, err := fitcalc.Calculate(doc.Snapshot, doc.Person, params)
	if err != nil {
		return err
	}
	if c.Bool("rounded") {
		r := res.Rounded()
		res = &r
	}
	return encode(c, res)
}

func progress(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	var doc struct {
		Series    []float64                     `json:"series" yaml:"series"`
		Direction fitcalc.Direction             `json:"direction" yaml:"direction"`
		Records   []fitcalc.PersonalRecordEntry `json:"records" yaml:"records"`
		Dates     []time.Time                   `json:"dates" yaml:"dates"`
	}
	if err = input(c, &doc); err != nil {
		return err
	}

	res := struct {
		Trend  *fitcalc.Trend                         `json:"trend,omitempty"`
		Change *fitcalc.Delta                         `json:"change,omitempty"`
		Bests  map[string]fitcalc.PersonalRecordEntry `json:"bests,omitempty"`
		Streak *fitcalc.Streak                        `json:"streak,omitempty"`
	}{}
	if len(doc.Series) > 0 {
		trend, err := fitcalc.ClassifyTrend(doc.Series, doc.Direction, cfg.Trend)
		if err != nil {
			return err
		}
		res.Trend = &trend
		if n := len(doc.Series); n > 1 {
			d, err := fitcalc.ComputeDelta(doc.Series[n-1], doc.Series[n-2], doc.Direction)
			if err != nil {
				return err
			}
			res.Change = &d
		}
	}
	if len(doc.Records) > 0 {
		if res.Bests, err = fitcalc.BestByExercise(doc.Records); err != nil {
			return err
		}
	}
	if len(doc.Dates) > 0 {
		s, err := fitcalc.ComputeStreakAsOf(doc.Dates, cfg.Streak.IntervalDays, time.Now())
		if err != nil {
			return err
		}
		res.Streak = &s
	}
	return encode(c, res)
}

func goals(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	var doc struct {
		Goals []fitcalc.Goal `json:"goals" yaml:"goals"`
	}
	if err = input(c, &doc); err != nil {
		return err
	}
	for _, g := range doc.Goals {
		if !fitcalc.MilestonesOrdered(g) {
			log.Warn().Str("goal", g.Name).Msg("milestones out of order")
		}
	}
	sum, err := fitcalc.Summarize(doc.Goals, cfg.Trend)
	if err != nil {
		return err
	}
	return encode(c, sum)
}

func report(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	var doc struct {
		Person  fitcalc.Person                `json:"person" yaml:"person"`
		History []fitcalc.MeasurementSnapshot `json:"history" yaml:"history"`
	}
	if err = input(c, &doc); err != nil {
		return err
	}
	for i := range doc.History {
		if doc.History[i].Units == "" {
			doc.History[i].Units = cfg.Units
		}
	}
	res, err := fitcalc.NewReporter(cfg).Report(c.Context, doc.Person, doc.History)
	if err != nil {
		return err
	}
	return encode(c, res)
}

func newEngine(c *cli.Context) (*echo.Echo, error) {
	cfg, err := config(c)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(c.String("base-url"))
	if err != nil {
		return nil, err
	}

	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Recover())
	engine.Use(session.Middleware(sessions.NewCookieStore([]byte(c.String("session-key")))))

	p := prometheus.NewPrometheus("fitcalc", nil)
	p.MetricsPath = u.Path + "/prometheus"
	p.Use(engine)

	base := engine.Group(u.Path)
	base.GET("/preferences", fitcalc.PreferencesHandler(cfg))
	base.PUT("/preferences", fitcalc.UpdatePreferencesHandler(cfg))
	base.POST("/metrics", fitcalc.MetricsHandler(cfg))
	base.POST("/progress/delta", fitcalc.DeltaHandler())
	base.POST("/progress/trend", fitcalc.TrendHandler(cfg))
	base.POST("/progress/best", fitcalc.BestHandler())
	base.POST("/progress/streak", fitcalc.StreakHandler(cfg))
	base.POST("/goals/summary", fitcalc.GoalsHandler(cfg))
	base.POST("/report", fitcalc.ReportHandler(cfg))

	return engine, nil
}

func serve(c *cli.Context) error {
	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	u, err := url.Parse(c.String("base-url"))
	if err != nil {
		return err
	}
	_, port, _ := net.SplitHostPort(u.Host)
	address := fmt.Sprintf("0.0.0.0:%s", port)
	log.Info().Str("address", address).Msg("serving")
	return http.ListenAndServe(address, engine)
}

func function(c *cli.Context) error {
	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	log.Info().Msg("running function")
	lambda.Start(fitcalc.LambdaHandler(echoadapter.New(engine)))
	return nil
}

func main() {
	inputFlag := &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    "JSON or YAML input document",
	}
	serverFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "session-key",
			Required: true,
			Usage:    "session keypair",
			EnvVars:  []string{"FITCALC_SESSION_KEY"},
		},
		&cli.StringFlag{
			Name:    "base-url",
			Value:   "http://localhost:9001",
			Usage:   "Base URL",
			EnvVars: []string{"BASE_URL"},
		},
	}
	app := &cli.App{
		Name:     "fitcalc",
		HelpName: "fitcalc",
		Usage:    "Body metrics and progress calculations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "file with calculation defaults (JSON or YAML)",
				EnvVars: []string{"FITCALC_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Value: false,
				Usage: "enable debug logging",
			},
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			log.Error().Err(err).Msg(c.App.Name)
		},
		Before: func(c *cli.Context) error {
			level := zerolog.InfoLevel
			if c.Bool("verbose") {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
			zerolog.DurationFieldUnit = time.Millisecond
			zerolog.DurationFieldInteger = false
			log.Logger = log.Output(
				zerolog.ConsoleWriter{
					Out:        c.App.ErrWriter,
					NoColor:    false,
					TimeFormat: time.RFC3339,
				},
			)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "metrics",
				Usage: "calculate body metrics for a snapshot",
				Flags: []cli.Flag{
					inputFlag,
					&cli.StringFlag{Name: "activity", Usage: "activity level"},
					&cli.StringFlag{Name: "goal", Usage: "weight goal"},
					&cli.BoolFlag{Name: "rounded", Usage: "round values for display"},
				},
				Action: metrics,
			},
			{
				Name:   "progress",
				Usage:  "trend, personal bests and streaks",
				Flags:  []cli.Flag{inputFlag},
				Action: progress,
			},
			{
				Name:   "goals",
				Usage:  "summarize goal progress",
				Flags:  []cli.Flag{inputFlag},
				Action: goals,
			},
			{
				Name:   "report",
				Usage:  "calculate a measurement history",
				Flags:  []cli.Flag{inputFlag},
				Action: report,
			},
			{
				Name:   "serve",
				Usage:  "serve the HTTP API",
				Flags:  serverFlags,
				Action: serve,
			},
			{
				Name:   "function",
				Usage:  "run the HTTP API as a lambda function",
				Flags:  serverFlags,
				Action: function,
			},
		},
	}
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
