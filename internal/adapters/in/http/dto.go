package http

import "time"

// Wire error codes returned by the mutating endpoints. Clients branch on the
// code, not on the message.
const (
	CodeFSMViolation             = "FSM_VIOLATION"
	CodeGatewayFailure           = "GATEWAY_FAILURE"
	CodeInsufficientFunds        = "INSUFFICIENT_FUNDS"
	CodeReconciliationRequired   = "RECONCILIATION_REQUIRED"
	CodeConcurrencyConflict      = "CONCURRENCY_CONFLICT"
	CodeOperationAlreadyReversed = "OPERATION_ALREADY_REVERSED"
	CodeNotFound                 = "NOT_FOUND"
	CodeValidationError          = "VALIDATION_ERROR"
	CodeInternalError            = "INTERNAL_ERROR"
)

// OperationResult is the uniform response of the mutating shipment endpoints.
type OperationResult struct {
	Success   bool    `json:"success"`
	NewStatus *string `json:"newStatus,omitempty"`
	Error     *string `json:"error,omitempty"`
	ErrorCode *string `json:"errorCode,omitempty"`
}

// ResolveExceptionRequest is the body of POST /shipments/:id/resolve.
type ResolveExceptionRequest struct {
	Note string `json:"note"`
}

// TrackingEventRequest is the body of POST /shipments/:id/tracking-events.
type TrackingEventRequest struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  *string   `json:"location,omitempty"`
}

// ShipmentResponse is the projection returned by GET /shipments/:id.
type ShipmentResponse struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	TrackingNumber   *string    `json:"trackingNumber,omitempty"`
	LabelURL         *string    `json:"labelUrl,omitempty"`
	TotalCost        *string    `json:"totalCost,omitempty"`
	PickupDate       *time.Time `json:"pickupDate,omitempty"`
	ExpectedDelivery *time.Time `json:"expectedDelivery,omitempty"`
	ActualDelivery   *time.Time `json:"actualDelivery,omitempty"`
	Note             string     `json:"note"`
	Version          int        `json:"version"`
}

// RegisterPostalOperationRequest is the body of POST /postal-operations.
type RegisterPostalOperationRequest struct {
	WeightGrams int    `json:"weightGrams"`
	Service     string `json:"service"`
	Destination string `json:"destination"`
	OperatorID  string `json:"operatorId"`
}

// RegisterPostalOperationResponse reports a successful registration.
type RegisterPostalOperationResponse struct {
	Success    bool   `json:"success"`
	Code       string `json:"code"`
	NewBalance string `json:"newBalance"`
	Margin     string `json:"margin"`
}

// BalanceResponse is the projection returned by GET /ledger/balance.
type BalanceResponse struct {
	Owner       string    `json:"owner"`
	Amount      string    `json:"amount"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// PostalOperationResponse is one entry of GET /ledger/operations.
type PostalOperationResponse struct {
	Code        string    `json:"code"`
	WeightGrams int       `json:"weightGrams"`
	Service     string    `json:"service"`
	Destination string    `json:"destination"`
	Cost        string    `json:"cost"`
	Revenue     string    `json:"revenue"`
	Margin      string    `json:"margin"`
	OperatorID  string    `json:"operatorId"`
	IsReversed  bool      `json:"isReversed"`
	CreatedAt   time.Time `json:"createdAt"`
}
