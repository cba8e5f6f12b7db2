// Package http is the inbound HTTP adapter: an echo server exposing the
// shipment lifecycle and the postal ledger. All mutating endpoints answer a
// uniform result envelope so clients always find success, status and error
// code in the same places.
package http

import (
	"errors"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/ledger"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	bookShipmentHandler        commands.BookShipmentCommandHandler
	cancelShipmentHandler      commands.CancelShipmentCommandHandler
	resolveExceptionHandler    commands.ResolveExceptionCommandHandler
	ingestTrackingHandler      commands.IngestTrackingUpdateCommandHandler
	registerOperationHandler   commands.RegisterPostalOperationCommandHandler
	reverseOperationHandler    commands.ReversePostalOperationCommandHandler
	getShipmentHandler         queries.GetShipmentQueryHandler
	getCashBalanceHandler      queries.GetCashBalanceQueryHandler
	getPostalOperationsHandler queries.GetPostalOperationsQueryHandler
	ledgerOwner                string
}

// NewServer creates an HTTP server wired to the command and query handlers.
func NewServer(
	bookShipmentHandler commands.BookShipmentCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	resolveExceptionHandler commands.ResolveExceptionCommandHandler,
	ingestTrackingHandler commands.IngestTrackingUpdateCommandHandler,
	registerOperationHandler commands.RegisterPostalOperationCommandHandler,
	reverseOperationHandler commands.ReversePostalOperationCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getCashBalanceHandler queries.GetCashBalanceQueryHandler,
	getPostalOperationsHandler queries.GetPostalOperationsQueryHandler,
	ledgerOwner string,
) *Server {
	return &Server{
		bookShipmentHandler:        bookShipmentHandler,
		cancelShipmentHandler:      cancelShipmentHandler,
		resolveExceptionHandler:    resolveExceptionHandler,
		ingestTrackingHandler:      ingestTrackingHandler,
		registerOperationHandler:   registerOperationHandler,
		reverseOperationHandler:    reverseOperationHandler,
		getShipmentHandler:         getShipmentHandler,
		getCashBalanceHandler:      getCashBalanceHandler,
		getPostalOperationsHandler: getPostalOperationsHandler,
		ledgerOwner:                ledgerOwner,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments/:id/book", s.BookShipment)
	api.POST("/shipments/:id/cancel", s.CancelShipment)
	api.POST("/shipments/:id/resolve", s.ResolveException)
	api.POST("/shipments/:id/tracking-events", s.IngestTrackingEvent)
	api.GET("/shipments/:id", s.GetShipment)

	api.POST("/postal-operations", s.RegisterPostalOperation)
	api.POST("/postal-operations/:code/reverse", s.ReversePostalOperation)
	api.GET("/ledger/balance", s.GetCashBalance)
	api.GET("/ledger/operations", s.GetPostalOperations)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// BookShipment handles POST /api/v1/shipments/:id/book.
func (s *Server) BookShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.operationError(ctx, err)
	}

	cmd, err := commands.NewBookShipmentCommand(shipmentID)
	if err != nil {
		return s.operationError(ctx, err)
	}

	if err = s.bookShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.operationError(ctx, err)
	}

	return s.operationSuccess(ctx, shipmentID)
}

// CancelShipment handles POST /api/v1/shipments/:id/cancel.
func (s *Server) CancelShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.operationError(ctx, err)
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID)
	if err != nil {
		return s.operationError(ctx, err)
	}

	if err = s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.operationError(ctx, err)
	}

	return s.operationSuccess(ctx, shipmentID)
}

// ResolveException handles POST /api/v1/shipments/:id/resolve.
func (s *Server) ResolveException(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.operationError(ctx, err)
	}

	var req ResolveExceptionRequest
	if err = ctx.Bind(&req); err != nil {
		return s.operationError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewResolveExceptionCommand(shipmentID, req.Note)
	if err != nil {
		return s.operationError(ctx, err)
	}

	if err = s.resolveExceptionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.operationError(ctx, err)
	}

	return s.operationSuccess(ctx, shipmentID)
}

// IngestTrackingEvent handles POST /api/v1/shipments/:id/tracking-events.
func (s *Server) IngestTrackingEvent(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.operationError(ctx, err)
	}

	var req TrackingEventRequest
	if err = ctx.Bind(&req); err != nil {
		return s.operationError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewIngestTrackingUpdateCommand(shipmentID, req.Status, req.Timestamp, req.Location)
	if err != nil {
		return s.operationError(ctx, err)
	}

	if err = s.ingestTrackingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.operationError(ctx, err)
	}

	return s.operationSuccess(ctx, shipmentID)
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.operationError(ctx, err)
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return s.operationError(ctx, err)
	}

	projection, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.operationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(projection))
}

// RegisterPostalOperation handles POST /api/v1/postal-operations.
func (s *Server) RegisterPostalOperation(ctx echo.Context) error {
	var req RegisterPostalOperationRequest
	if err := ctx.Bind(&req); err != nil {
		return s.operationError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	operatorID, err := kernel.UUIDFromString(req.OperatorID)
	if err != nil {
		return s.operationError(ctx, err)
	}

	cmd, err := commands.NewRegisterPostalOperationCommand(
		req.WeightGrams, req.Service, req.Destination, operatorID,
	)
	if err != nil {
		return s.operationError(ctx, err)
	}

	result, err := s.registerOperationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.operationError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterPostalOperationResponse{
		Success:    true,
		Code:       result.Code,
		NewBalance: result.NewBalance.String(),
		Margin:     result.Margin.String(),
	})
}

// ReversePostalOperation handles POST /api/v1/postal-operations/:code/reverse.
func (s *Server) ReversePostalOperation(ctx echo.Context) error {
	cmd, err := commands.NewReversePostalOperationCommand(ctx.Param("code"))
	if err != nil {
		return s.operationError(ctx, err)
	}

	if err = s.reverseOperationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.operationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OperationResult{Success: true})
}

// GetCashBalance handles GET /api/v1/ledger/balance.
func (s *Server) GetCashBalance(ctx echo.Context) error {
	query, err := queries.NewGetCashBalanceQuery(s.ledgerOwner)
	if err != nil {
		return s.operationError(ctx, err)
	}

	balance, err := s.getCashBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.operationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BalanceResponse{
		Owner:       balance.Owner,
		Amount:      balance.Amount.String(),
		LastUpdated: balance.LastUpdated,
	})
}

// GetPostalOperations handles GET /api/v1/ledger/operations.
func (s *Server) GetPostalOperations(ctx echo.Context) error {
	operations, err := s.getPostalOperationsHandler.Handle(
		ctx.Request().Context(), queries.NewGetPostalOperationsQuery(),
	)
	if err != nil {
		return s.operationError(ctx, err)
	}

	response := make([]PostalOperationResponse, len(operations))
	for i, op := range operations {
		response[i] = PostalOperationResponse{
			Code:        op.Code,
			WeightGrams: op.WeightGrams,
			Service:     op.Service,
			Destination: op.Destination,
			Cost:        op.Cost.String(),
			Revenue:     op.Revenue.String(),
			Margin:      op.Margin.String(),
			OperatorID:  op.OperatorID.String(),
			IsReversed:  op.IsReversed,
			CreatedAt:   op.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// operationSuccess re-reads the shipment and answers the uniform envelope with
// the status the operation left it in.
func (s *Server) operationSuccess(ctx echo.Context, shipmentID kernel.UUID) error {
	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return s.operationError(ctx, err)
	}

	projection, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.operationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OperationResult{
		Success:   true,
		NewStatus: &projection.Status,
	})
}

// operationError answers the uniform envelope with the error classified into
// a wire code and HTTP status.
func (s *Server) operationError(ctx echo.Context, err error) error {
	status, code := classifyError(err)
	message := err.Error()
	return ctx.JSON(status, OperationResult{
		Success:   false,
		Error:     &message,
		ErrorCode: &code,
	})
}

// classifyError maps domain and application errors onto HTTP statuses and
// wire error codes. An illegal transition is a conflict with current state,
// not a server fault; only a failed compensation answers 500.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, commands.ErrReconciliationRequired):
		return http.StatusInternalServerError, CodeReconciliationRequired
	case errors.Is(err, commands.ErrShipmentNotInException):
		return http.StatusConflict, CodeFSMViolation
	case errors.Is(err, shipment.ErrIllegalTransition):
		return http.StatusConflict, CodeFSMViolation
	case errors.Is(err, commands.ErrConcurrencyConflict):
		return http.StatusConflict, CodeConcurrencyConflict
	case errors.Is(err, commands.ErrGatewayFailure):
		return http.StatusBadGateway, CodeGatewayFailure
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, CodeInsufficientFunds
	case errors.Is(err, ledger.ErrOperationAlreadyReversed):
		return http.StatusConflict, CodeOperationAlreadyReversed
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, CodeValidationError
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

func toShipmentResponse(projection queries.GetShipmentQueryResponse) ShipmentResponse {
	resp := ShipmentResponse{
		ID:               projection.ID.String(),
		Status:           projection.Status,
		TrackingNumber:   projection.TrackingNumber,
		LabelURL:         projection.LabelURL,
		PickupDate:       projection.PickupDate,
		ExpectedDelivery: projection.ExpectedDelivery,
		ActualDelivery:   projection.ActualDelivery,
		Note:             projection.Note,
		Version:          projection.Version,
	}
	if projection.TotalCost != nil {
		cost := projection.TotalCost.String()
		resp.TotalCost = &cost
	}
	return resp
}
