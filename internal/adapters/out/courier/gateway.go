// Package courier implements the CourierGateway port as an HTTP client for the
// external courier's JSON API. Every call is bounded by the configured
// timeout; a timed-out call reports an error without implying the remote
// operation failed.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

const apiKeyHeader = "X-Api-Key"

// Client is an HTTP implementation of ports.CourierGateway.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a courier API client.
// The timeout bounds every individual call, on top of whatever deadline the
// caller's context already carries.
func NewClient(baseURL string, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type bookRequest struct {
	ShipmentID string `json:"shipmentId"`
}

type bookResponse struct {
	TrackingNumber   string    `json:"trackingNumber"`
	LabelURL         string    `json:"labelUrl"`
	TotalCostCents   int64     `json:"totalCostCents"`
	PickupDate       time.Time `json:"pickupDate"`
	ExpectedDelivery time.Time `json:"expectedDelivery"`
}

type trackingResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  *string   `json:"location,omitempty"`
}

// Book registers the shipment with the courier and returns the booking
// confirmation.
func (c *Client) Book(ctx context.Context, aggregate *shipment.Shipment) (ports.BookingConfirmation, error) {
	if err := aggregate.Validate(); err != nil {
		return ports.BookingConfirmation{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(bookRequest{ShipmentID: aggregate.ID().String()})
	if err != nil {
		return ports.BookingConfirmation{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return ports.BookingConfirmation{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.BookingConfirmation{}, fmt.Errorf("courier book call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return ports.BookingConfirmation{}, unexpectedStatus("book", resp)
	}

	var booked bookResponse
	if err = json.NewDecoder(resp.Body).Decode(&booked); err != nil {
		return ports.BookingConfirmation{}, fmt.Errorf("courier book response: %w", err)
	}

	return ports.BookingConfirmation{
		TrackingNumber:   booked.TrackingNumber,
		LabelURL:         booked.LabelURL,
		TotalCost:        kernel.MoneyFromCents(booked.TotalCostCents),
		PickupDate:       booked.PickupDate,
		ExpectedDelivery: booked.ExpectedDelivery,
	}, nil
}

// Cancel revokes a booking identified by its tracking number.
func (c *Client) Cancel(ctx context.Context, trackingNumber string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, c.baseURL+"/bookings/"+trackingNumber, nil,
	)
	if err != nil {
		return err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("courier cancel call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return unexpectedStatus("cancel", resp)
	}

	return nil
}

// GetTracking fetches the latest tracking state for a booking.
func (c *Client) GetTracking(ctx context.Context, trackingNumber string) (ports.TrackingUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/tracking/"+trackingNumber, nil,
	)
	if err != nil {
		return ports.TrackingUpdate{}, err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.TrackingUpdate{}, fmt.Errorf("courier tracking call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.TrackingUpdate{}, unexpectedStatus("tracking", resp)
	}

	var tracking trackingResponse
	if err = json.NewDecoder(resp.Body).Decode(&tracking); err != nil {
		return ports.TrackingUpdate{}, fmt.Errorf("courier tracking response: %w", err)
	}

	return ports.TrackingUpdate{
		CarrierStatus: tracking.Status,
		Timestamp:     tracking.Timestamp,
		Location:      tracking.Location,
	}, nil
}

// unexpectedStatus builds an error carrying the status code and a short body
// snippet, which is usually the courier's error message.
func unexpectedStatus(operation string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return fmt.Errorf("courier %s: unexpected status %d: %s", operation, resp.StatusCode, snippet)
}
