// Package http exposes the order service REST API on echo. Handlers parse
// and validate transport concerns, delegate to command and query handlers,
// and map the error taxonomy onto HTTP status codes.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"orders/internal/core/application/ordercache"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createOrderItemRequest struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type createOrderRequest struct {
	CustomerID string                   `json:"customerId"`
	VendorID   string                   `json:"vendorId"`
	Notes      string                   `json:"notes"`
	Items      []createOrderItemRequest `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type createOrderCommandHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*queries.OrderDetailResponse, error)
}

type updateOrderStatusCommandHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*queries.OrderDetailResponse, error)
}

type addOrderItemCommandHandler interface {
	Handle(ctx context.Context, cmd commands.AddOrderItemCommand) (*queries.OrderDetailResponse, error)
}

type removeOrderItemCommandHandler interface {
	Handle(ctx context.Context, cmd commands.RemoveOrderItemCommand) (*queries.OrderDetailResponse, error)
}

type updateItemQuantityCommandHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateItemQuantityCommand) (*queries.OrderDetailResponse, error)
}

type getOrderByIDQueryHandler interface {
	Handle(ctx context.Context, query queries.GetOrderByIDQuery) (*queries.OrderDetailResponse, error)
}

type listOrdersQueryHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummaryResponse, error)
}

// Server wires the REST endpoints to the application's command and query
// handlers.
type Server struct {
	createOrderHandler        createOrderCommandHandler
	updateOrderStatusHandler  updateOrderStatusCommandHandler
	addOrderItemHandler       addOrderItemCommandHandler
	removeOrderItemHandler    removeOrderItemCommandHandler
	updateItemQuantityHandler updateItemQuantityCommandHandler
	getOrderByIDHandler       getOrderByIDQueryHandler
	listOrdersHandler         listOrdersQueryHandler
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(
	createOrderHandler createOrderCommandHandler,
	updateOrderStatusHandler updateOrderStatusCommandHandler,
	addOrderItemHandler addOrderItemCommandHandler,
	removeOrderItemHandler removeOrderItemCommandHandler,
	updateItemQuantityHandler updateItemQuantityCommandHandler,
	getOrderByIDHandler getOrderByIDQueryHandler,
	listOrdersHandler listOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		addOrderItemHandler:       addOrderItemHandler,
		removeOrderItemHandler:    removeOrderItemHandler,
		updateItemQuantityHandler: updateItemQuantityHandler,
		getOrderByIDHandler:       getOrderByIDHandler,
		listOrdersHandler:         listOrdersHandler,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PUT("/orders/:id/status", s.UpdateOrderStatus)
	v1.POST("/orders/:id/items", s.AddOrderItem)
	v1.DELETE("/orders/:id/items/:itemID", s.RemoveOrderItem)
	v1.PUT("/orders/:id/items/:itemID/quantity", s.UpdateItemQuantity)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customerId: "+err.Error())
	}
	vendorID, err := kernel.UUIDFromString(req.VendorID)
	if err != nil {
		return badRequest(ctx, "Invalid vendorId: "+err.Error())
	}

	items := make([]commands.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, itemErr := kernel.UUIDFromString(item.ProductID)
		if itemErr != nil {
			return badRequest(ctx, "Invalid productId: "+itemErr.Error())
		}
		items = append(items, commands.OrderItemInput{
			ProductID:   productID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   kernel.NewMoneyFromDecimal(item.UnitPrice),
		})
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, vendorID, req.Notes, items)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, resp)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}
	if resp == nil {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	page, err := intParam(ctx, "page", ordercache.DefaultPage)
	if err != nil {
		return badRequest(ctx, "Invalid page: "+err.Error())
	}
	pageSize, err := intParam(ctx, "pageSize", ordercache.DefaultPageSize)
	if err != nil {
		return badRequest(ctx, "Invalid pageSize: "+err.Error())
	}

	filter, err := parseListFilter(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewListOrdersQuery(page, pageSize, filter)
	if err != nil {
		return errorJSON(ctx, err)
	}

	summaries, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, summaries)
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// AddOrderItem handles POST /api/v1/orders/:id/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req createOrderItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid productId: "+err.Error())
	}

	cmd, err := commands.NewAddOrderItemCommand(
		orderID, productID, req.ProductName, req.Quantity, kernel.NewMoneyFromDecimal(req.UnitPrice))
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.addOrderItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// RemoveOrderItem handles DELETE /api/v1/orders/:id/items/:itemID.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemID"))
	if err != nil {
		return badRequest(ctx, "Invalid item id: "+err.Error())
	}

	cmd, err := commands.NewRemoveOrderItemCommand(orderID, itemID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.removeOrderItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// UpdateItemQuantity handles PUT /api/v1/orders/:id/items/:itemID/quantity.
func (s *Server) UpdateItemQuantity(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemID"))
	if err != nil {
		return badRequest(ctx, "Invalid item id: "+err.Error())
	}

	var req updateQuantityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateItemQuantityCommand(orderID, itemID, req.Quantity)
	if err != nil {
		return errorJSON(ctx, err)
	}

	resp, err := s.updateItemQuantityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func parseListFilter(ctx echo.Context) (queries.ListOrdersFilter, error) {
	var filter queries.ListOrdersFilter

	if raw := ctx.QueryParam("customerId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return filter, errors.New("Invalid customerId: " + err.Error())
		}
		filter.CustomerID = &id
	}
	if raw := ctx.QueryParam("vendorId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return filter, errors.New("Invalid vendorId: " + err.Error())
		}
		filter.VendorID = &id
	}
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return filter, errors.New("Invalid status: " + raw)
		}
		filter.Status = &status
	}
	if raw := ctx.QueryParam("fromDate"); raw != "" {
		from, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, errors.New("Invalid fromDate, expected YYYY-MM-DD")
		}
		filter.FromDate = &from
	}
	if raw := ctx.QueryParam("toDate"); raw != "" {
		to, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, errors.New("Invalid toDate, expected YYYY-MM-DD")
		}
		filter.ToDate = &to
	}

	return filter, nil
}

func intParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorJSON maps the error taxonomy onto HTTP status codes.
func errorJSON(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidState):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrConcurrencyConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrUnavailable):
		code = http.StatusServiceUnavailable
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
