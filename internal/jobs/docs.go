// Package jobs provides scheduled background tasks for the delivery service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// RouteBacklogJob counts routes per status across tenants and publishes the
// result on the routes gauge. The schedule comes from METRICS_REFRESH_SPEC and
// defaults to every fifteen seconds.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(countHandler, appMetrics, cfg.MetricsRefreshSpec, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and leaves the gauge at its previous values.
// An invalid cron spec fails StartAll.
package jobs
