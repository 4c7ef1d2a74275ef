package jobs

import (
	"context"

	"lastmile/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRouteBacklogSpec refreshes the gauge every fifteen seconds.
const DefaultRouteBacklogSpec = "*/15 * * * * *"

type statusCounter interface {
	Handle(ctx context.Context, query queries.CountDeliveriesByStatusQuery) ([]queries.StatusCount, error)
}

type routeGauge interface {
	SetRoutes(status string, count int64)
}

// RouteBacklogJob publishes the number of routes per status so that routes
// piling up in AwaitingApproval are visible on dashboards.
type RouteBacklogJob struct {
	counter statusCounter
	gauge   routeGauge
	spec    string
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewRouteBacklogJob creates the job. An empty spec falls back to DefaultRouteBacklogSpec.
func NewRouteBacklogJob(counter statusCounter, gauge routeGauge, spec string, logger *zap.Logger) *RouteBacklogJob {
	if spec == "" {
		spec = DefaultRouteBacklogSpec
	}

	return &RouteBacklogJob{
		counter: counter,
		gauge:   gauge,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With(zap.String("component", "route_backlog_job")),
	}
}

// Start schedules the refresh and runs it once right away.
func (j *RouteBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Refresh(context.Background()) }); err != nil {
		return err
	}

	j.Refresh(context.Background())
	j.cron.Start()
	j.logger.Info("Route backlog job started", zap.String("spec", j.spec))
	return nil
}

// Refresh reads the counts across tenants and updates the gauge.
func (j *RouteBacklogJob) Refresh(ctx context.Context) {
	query, err := queries.NewCountDeliveriesByStatusQuery(nil)
	if err != nil {
		j.logger.Error("Route backlog query could not be built", zap.Error(err))
		return
	}

	counts, err := j.counter.Handle(ctx, query)
	if err != nil {
		j.logger.Error("Route backlog job failed", zap.Error(err))
		return
	}

	for _, c := range counts {
		j.gauge.SetRoutes(c.Status.String(), c.Count)
	}
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *RouteBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Route backlog job stopped")
}
