package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	routeBacklogJob *RouteBacklogJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	counter statusCounter,
	gauge routeGauge,
	backlogSpec string,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		routeBacklogJob: NewRouteBacklogJob(counter, gauge, backlogSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.routeBacklogJob.Start(); err != nil {
		return fmt.Errorf("failed to start route backlog job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.routeBacklogJob.Stop()
}
