package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"orders/internal/core/application/ordercache"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler serves the cache-aside detail read path.
// On a cache miss it reads the order and its items from the database, joins
// the locally stored customer record, resolves the vendor through the
// gateway, caches the projection, and returns it.
//
// A nonexistent order returns (nil, nil): absence is an answer, not an error.
type GetOrderByIDQueryHandler struct {
	db      *gorm.DB
	cache   *ordercache.Layer
	vendors ports.VendorGateway
	logger  *slog.Logger
}

// NewGetOrderByIDQueryHandler creates a handler for detail reads.
func NewGetOrderByIDQueryHandler(
	db *gorm.DB,
	cache *ordercache.Layer,
	vendors ports.VendorGateway,
	logger *slog.Logger,
) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{
		db:      db,
		cache:   cache,
		vendors: vendors,
		logger:  logger.With("component", "get_order_by_id_query"),
	}
}

// Handle executes the detail read.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (*OrderDetailResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var cached OrderDetailResponse
	if h.cache.GetDetail(ctx, query.OrderID(), &cached) {
		return &cached, nil
	}

	resp, err := h.loadDetail(ctx, query.OrderID())
	if err != nil || resp == nil {
		return nil, err
	}

	h.resolveVendor(ctx, query.OrderID(), resp)

	if err = h.cache.SetDetail(ctx, query.OrderID(), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (h GetOrderByIDQueryHandler) loadDetail(ctx context.Context, orderID kernel.UUID) (*OrderDetailResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.customer_id,
			o.vendor_id,
			o.status,
			o.total_amount,
			o.order_date,
			o.notes,
			o.updated_at,
			c.name,
			c.email
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE o.id = ?
	`, orderID.Bytes()).Row()

	var (
		resp          OrderDetailResponse
		status        int
		updatedAt     sql.NullTime
		customerName  sql.NullString
		customerEmail sql.NullString
	)
	err := row.Scan(
		&resp.ID,
		&resp.OrderNumber,
		&resp.CustomerID,
		&resp.VendorID,
		&status,
		&resp.TotalAmount,
		&resp.OrderDate,
		&resp.Notes,
		&updatedAt,
		&customerName,
		&customerEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	resp.Status = order.Status(status).String()
	resp.CustomerName = UnknownCustomerName
	resp.VendorName = UnknownVendorName
	if customerName.Valid {
		resp.CustomerName = customerName.String
		resp.CustomerEmail = customerEmail.String
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		resp.UpdatedAt = &t
	}

	items, err := h.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp.Items = items
	resp.ItemCount = len(items)
	return &resp, nil
}

func (h GetOrderByIDQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			product_name,
			quantity,
			unit_price,
			line_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			item      OrderItemResponse
			id        uuid.UUID
			productID uuid.UUID
			unitPrice decimal.Decimal
			lineTotal decimal.Decimal
		)
		if err = rows.Scan(&id, &productID, &item.ProductName, &item.Quantity, &unitPrice, &lineTotal); err != nil {
			return nil, err
		}
		item.ID = id
		item.ProductID = productID
		item.UnitPrice = unitPrice
		item.TotalPrice = lineTotal
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// resolveVendor enriches the projection with the vendor's name and email.
// An absent vendor or gateway failure leaves the placeholder in place.
func (h GetOrderByIDQueryHandler) resolveVendor(ctx context.Context, orderID kernel.UUID, resp *OrderDetailResponse) {
	vendorID, err := kernel.UUIDFromBytes(resp.VendorID[:])
	if err != nil {
		return
	}

	vendor, err := h.vendors.GetByID(ctx, vendorID)
	if err != nil {
		h.logger.WarnContext(ctx, "Vendor lookup failed, using placeholder",
			"orderId", orderID.String(), "vendorId", vendorID.String(), "error", err)
		return
	}
	if vendor == nil {
		return
	}

	resp.VendorName = vendor.Name
	resp.VendorEmail = vendor.Email
}
