package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler reads a single shipment projection from the database.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment detail queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query for one shipment.
// Returns an errs.ErrObjectNotFound based error when no row matches.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			tracking_number,
			label_url,
			total_cost_cents,
			pickup_date,
			expected_delivery,
			actual_delivery,
			note,
			version
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().String()).Row()

	var (
		id             uuid.UUID
		status         string
		trackingNumber sql.NullString
		labelURL       sql.NullString
		totalCostCents sql.NullInt64
		pickupDate     sql.NullTime
		expectedDelivery sql.NullTime
		actualDelivery sql.NullTime
		note           string
		version        int
	)

	err := row.Scan(
		&id,
		&status,
		&trackingNumber,
		&labelURL,
		&totalCostCents,
		&pickupDate,
		&expectedDelivery,
		&actualDelivery,
		&note,
		&version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipmentID", query.ShipmentID())
	}
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	resp := GetShipmentQueryResponse{
		ID:      shipmentID,
		Status:  status,
		Note:    note,
		Version: version,
	}
	if trackingNumber.Valid {
		resp.TrackingNumber = &trackingNumber.String
	}
	if labelURL.Valid {
		resp.LabelURL = &labelURL.String
	}
	if totalCostCents.Valid {
		cost := kernel.MoneyFromCents(totalCostCents.Int64)
		resp.TotalCost = &cost
	}
	resp.PickupDate = nullableTime(pickupDate)
	resp.ExpectedDelivery = nullableTime(expectedDelivery)
	resp.ActualDelivery = nullableTime(actualDelivery)

	return resp, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
