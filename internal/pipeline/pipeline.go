package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/city-conditions-dashboard/internal/chart"
	"github.com/couchcryptid/city-conditions-dashboard/internal/dashboard"
	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
	"github.com/couchcryptid/city-conditions-dashboard/internal/observability"
)

// Source loads the raw dataset.
type Source interface {
	Load() (*domain.Table, error)
}

// AggregatePublisher exports aggregate tables after a build.
type AggregatePublisher interface {
	Publish(ctx context.Context, tables []domain.AggregateTable, generatedAt time.Time) (int, error)
}

// Aggregates are the mean tables the dashboard is built from.
type Aggregates struct {
	Rain            domain.AggregateTable
	Snow            domain.AggregateTable
	Temperature     domain.AggregateTable
	CityTemperature domain.AggregateTable
}

// All returns the tables in a fixed order.
func (a Aggregates) All() []domain.AggregateTable {
	return []domain.AggregateTable{a.Rain, a.Snow, a.Temperature, a.CityTemperature}
}

// Dashboard is everything one build produces. It is read-only once returned.
type Dashboard struct {
	Table       *domain.Table
	Aggregates  Aggregates
	Figures     []chart.Figure
	Page        dashboard.Page
	HTML        []byte
	GeneratedAt time.Time
}

// Options configure a Pipeline.
type Options struct {
	MissingValues domain.MissingPolicy
	Assets        dashboard.Assets
	// Publisher is optional; nil disables aggregate export.
	Publisher AggregatePublisher
}

// Pipeline runs the load → aggregate → chart/table → page sequence once.
type Pipeline struct {
	source    Source
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	dashboard atomic.Pointer[Dashboard]
}

// New creates a Pipeline reading from source.
func New(source Source, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	if opts.MissingValues == "" {
		opts.MissingValues = domain.MissingSkip
	}
	return &Pipeline{
		source:  source,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once a dashboard has been built.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.dashboard.Load() == nil {
		return errors.New("dashboard has not been built yet")
	}
	return nil
}

// Dashboard returns the last built dashboard, or nil before the first build.
func (p *Pipeline) Dashboard() *Dashboard {
	return p.dashboard.Load()
}

// Build loads the dataset, aggregates it, builds the figures and the table,
// and renders the page. Any load, schema or parse error aborts the build
// before a chart is produced.
func (p *Pipeline) Build(ctx context.Context) (*Dashboard, error) {
	start := time.Now()

	table, err := p.source.Load()
	if err != nil {
		return nil, err
	}
	p.metrics.RowsLoaded.Set(float64(table.Len()))

	if err := table.Require(domain.RequiredColumns...); err != nil {
		return nil, fmt.Errorf("dataset schema: %w", err)
	}

	aggs, err := Aggregate(table, p.opts.MissingValues)
	if err != nil {
		return nil, err
	}
	for _, t := range aggs.All() {
		p.metrics.AggregateGroups.WithLabelValues(t.Name()).Set(float64(len(t.Rows)))
		p.logger.Debug("aggregate built", "table", t.Name(), "groups", len(t.Rows))
	}

	figures := Figures(aggs)
	generatedAt := domain.Now()
	page := dashboard.Compose(dashboard.BuildTable(table), figures, generatedAt, p.opts.Assets)
	html, err := dashboard.RenderBytes(page)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Table:       table,
		Aggregates:  aggs,
		Figures:     figures,
		Page:        page,
		HTML:        html,
		GeneratedAt: generatedAt,
	}
	p.dashboard.Store(d)
	p.metrics.DashboardReady.Set(1)
	p.metrics.BuildDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("dashboard built",
		"rows", table.Len(),
		"charts", len(figures),
		"bytes", len(html),
		"duration", time.Since(start),
	)

	p.publish(ctx, aggs, generatedAt)
	return d, nil
}

// publish exports the aggregates when a publisher is configured. Failures are
// logged; the dashboard does not depend on the export.
func (p *Pipeline) publish(ctx context.Context, aggs Aggregates, generatedAt time.Time) {
	if p.opts.Publisher == nil {
		return
	}
	n, err := p.opts.Publisher.Publish(ctx, aggs.All(), generatedAt)
	if err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Error("publish aggregates failed", "error", err)
		return
	}
	p.metrics.AggregatesPublished.Add(float64(n))
}

// Aggregate computes the four mean tables the dashboard uses.
func Aggregate(table *domain.Table, policy domain.MissingPolicy) (Aggregates, error) {
	byCountryYear := []string{domain.ColCountry, domain.ColYear}

	var (
		a   Aggregates
		err error
	)
	if a.Rain, err = domain.AggregateMean(table, byCountryYear, domain.ColRainDays, policy); err != nil {
		return Aggregates{}, err
	}
	if a.Snow, err = domain.AggregateMean(table, byCountryYear, domain.ColSnowDays, policy); err != nil {
		return Aggregates{}, err
	}
	if a.Temperature, err = domain.AggregateMean(table, byCountryYear, domain.ColAvgTempC, policy); err != nil {
		return Aggregates{}, err
	}
	byCity := []string{domain.ColCountry, domain.ColYear, domain.ColCity}
	if a.CityTemperature, err = domain.AggregateMean(table, byCity, domain.ColAvgTempC, policy); err != nil {
		return Aggregates{}, err
	}
	return a, nil
}

// Figures builds the five charts in page order.
func Figures(a Aggregates) []chart.Figure {
	return []chart.Figure{
		chart.RainByCountry(a.Rain),
		chart.SnowByCountry(a.Snow),
		chart.RainYearMap(a.Rain),
		chart.RainAnimatedMap(a.Rain),
		chart.TemperatureAnimatedMap(a.Temperature),
	}
}
