package jobs

import (
	"fmt"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingPollJob *TrackingPollJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the tracking ingest handler and its collaborators as dependencies
// to wire up the job execution.
func NewJobManager(
	uowFactory commands.ShipmentUoWFactory,
	gateway ports.CourierGateway,
	ingestHandler commands.IngestTrackingUpdateCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		trackingPollJob: NewTrackingPollJob(uowFactory, gateway, ingestHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingPollJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking poll job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.trackingPollJob.Stop()
}
