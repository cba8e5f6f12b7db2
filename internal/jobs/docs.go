// Package jobs provides scheduled background tasks for the shipping system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shipping service.
//
// # Available Jobs
//
// 1. TrackingPollJob - Runs every 30 seconds to refresh carrier tracking
// state for shipments in booked or in_transit status
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, gateway, ingestHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The tracking poll job uses the cron expression "*/30 * * * * *", running
// every 30 seconds. Polling is the fallback for couriers without webhook
// push; both paths feed the same ingest handler.
//
// # Error Handling
//
// - Failures on individual shipments are logged and skipped so one flaky
// tracking number cannot stall the rest of the sweep
// - Concurrency conflicts are skipped silently; the next sweep sees the
// fresh state
package jobs
