package http

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/ledger"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"illegal transition",
			shipment.NewIllegalTransitionError(shipment.StatusDelivered, shipment.EventBook),
			nethttp.StatusConflict, CodeFSMViolation,
		},
		{
			"not in exception",
			fmt.Errorf("%w: current status is booked", commands.ErrShipmentNotInException),
			nethttp.StatusConflict, CodeFSMViolation,
		},
		{
			"gateway failure",
			fmt.Errorf("%w: book: connection refused", commands.ErrGatewayFailure),
			nethttp.StatusBadGateway, CodeGatewayFailure,
		},
		{
			"insufficient funds",
			ledger.ErrInsufficientFunds,
			nethttp.StatusUnprocessableEntity, CodeInsufficientFunds,
		},
		{
			"reconciliation required",
			fmt.Errorf("%w: tracking number TRK-1", commands.ErrReconciliationRequired),
			nethttp.StatusInternalServerError, CodeReconciliationRequired,
		},
		{
			"concurrency conflict",
			fmt.Errorf("%w: shipment", commands.ErrConcurrencyConflict),
			nethttp.StatusConflict, CodeConcurrencyConflict,
		},
		{
			"already reversed",
			ledger.ErrOperationAlreadyReversed,
			nethttp.StatusConflict, CodeOperationAlreadyReversed,
		},
		{
			"not found",
			errs.NewObjectNotFoundError("shipment", "abc"),
			nethttp.StatusNotFound, CodeNotFound,
		},
		{
			"validation",
			errs.NewValueIsRequiredError("note"),
			nethttp.StatusBadRequest, CodeValidationError,
		},
		{
			"unclassified",
			errors.New("boom"),
			nethttp.StatusInternalServerError, CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := classifyError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

// A reconciliation failure must keep its distinct code even when the original
// write error is itself classifiable: the outer wrap wins.
func TestClassifyError_ReconciliationWinsOverWrappedCause(t *testing.T) {
	cause := errs.NewVersionIsInvalidError("shipment")
	err := fmt.Errorf("%w: tracking number TRK-1: %w", commands.ErrReconciliationRequired, cause)

	status, code := classifyError(err)

	assert.Equal(t, nethttp.StatusInternalServerError, status)
	assert.Equal(t, CodeReconciliationRequired, code)
}
