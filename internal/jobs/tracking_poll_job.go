package jobs

import (
	"context"
	"errors"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// TrackingPollJob periodically refreshes carrier state for active shipments.
// Every 30 seconds it lists shipments in booked or in_transit status, fetches
// the latest tracking update for each from the courier, and feeds the update
// through the tracking ingest handler.
type TrackingPollJob struct {
	uowFactory    commands.ShipmentUoWFactory
	gateway       ports.CourierGateway
	ingestHandler commands.IngestTrackingUpdateCommandHandler
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewTrackingPollJob creates a new job for polling courier tracking state.
func NewTrackingPollJob(
	uowFactory commands.ShipmentUoWFactory,
	gateway ports.CourierGateway,
	ingestHandler commands.IngestTrackingUpdateCommandHandler,
	logger *slog.Logger,
) *TrackingPollJob {
	return &TrackingPollJob{
		uowFactory:    uowFactory,
		gateway:       gateway,
		ingestHandler: ingestHandler,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "tracking_poll_job"),
	}
}

// Start begins the tracking poll job to run every 30 seconds.
func (j *TrackingPollJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		if err := j.poll(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Tracking poll sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking poll job started (running every 30 seconds)")
	return nil
}

// Stop stops the tracking poll job.
func (j *TrackingPollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking poll job stopped")
}

// poll runs one sweep over all trackable shipments. Failures on individual
// shipments are logged and skipped so one flaky tracking number cannot stall
// the rest of the sweep.
func (j *TrackingPollJob) poll(ctx context.Context) error {
	trackable, err := j.listTrackable(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range trackable {
		if err := j.refresh(ctx, aggregate); err != nil {
			j.logger.ErrorContext(ctx, "Tracking refresh failed",
				"shipment_id", aggregate.ID().String(), "error", err)
		}
	}
	return nil
}

func (j *TrackingPollJob) listTrackable(ctx context.Context) ([]*shipment.Shipment, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.ShipmentRepository().GetAllTrackable(ctx)
}

func (j *TrackingPollJob) refresh(ctx context.Context, aggregate *shipment.Shipment) error {
	trackingNumber := aggregate.TrackingNumber()
	if trackingNumber == nil {
		return nil
	}

	update, err := j.gateway.GetTracking(ctx, *trackingNumber)
	if err != nil {
		return err
	}

	cmd, err := commands.NewIngestTrackingUpdateCommand(
		aggregate.ID(), update.CarrierStatus, update.Timestamp, update.Location)
	if err != nil {
		return err
	}

	if err := j.ingestHandler.Handle(ctx, cmd); err != nil {
		// A stale version means a concurrent write already advanced the
		// shipment; the next sweep will see the fresh state.
		if errors.Is(err, commands.ErrConcurrencyConflict) {
			j.logger.DebugContext(ctx, "Tracking refresh skipped, concurrent update won",
				"shipment_id", aggregate.ID().String())
			return nil
		}
		return err
	}
	return nil
}
