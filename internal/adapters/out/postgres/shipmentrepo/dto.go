// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, converting between the domain model and the relational
// representation.
package shipmentrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipments.
// The status column holds the exact wire strings; the version column carries
// the optimistic-concurrency token checked on every update.
type ShipmentDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status           string    `gorm:"index"`
	TrackingNumber   *string
	LabelURL         *string
	TotalCostCents   *int64
	PickupDate       *time.Time
	ExpectedDelivery *time.Time
	ActualDelivery   *time.Time
	Note             string
	Version          int
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment aggregate to its database representation.
// The version column is not set here: Add and Update manage it explicitly.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var totalCostCents *int64
	if cost := aggregate.TotalCost(); cost != nil {
		cents := cost.Cents()
		totalCostCents = &cents
	}

	return ShipmentDTO{
		ID:               aggregate.ID().Bytes(),
		Status:           aggregate.Status().String(),
		TrackingNumber:   aggregate.TrackingNumber(),
		LabelURL:         aggregate.LabelURL(),
		TotalCostCents:   totalCostCents,
		PickupDate:       aggregate.PickupDate(),
		ExpectedDelivery: aggregate.ExpectedDelivery(),
		ActualDelivery:   aggregate.ActualDelivery(),
		Note:             aggregate.Note(),
	}
}

// toDomain converts a database DTO to a shipment aggregate.
// Rows holding a status outside the valid set are rejected here, before any
// domain code runs against them.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var totalCost *kernel.Money
	if dto.TotalCostCents != nil {
		cost := kernel.MoneyFromCents(*dto.TotalCostCents)
		totalCost = &cost
	}

	return shipment.RestoreShipment(
		id,
		status,
		dto.Version,
		dto.TrackingNumber,
		dto.LabelURL,
		totalCost,
		dto.PickupDate,
		dto.ExpectedDelivery,
		dto.ActualDelivery,
		dto.Note,
	)
}
