package queries

import (
	"context"

	"orders/internal/core/application/ordercache"
	"orders/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler serves the cache-aside summary read path.
// Summaries join the locally stored customer record for the display name;
// vendor names are not stored locally and stay at the placeholder — the
// detail read resolves them through the gateway.
type ListOrdersQueryHandler struct {
	db    *gorm.DB
	cache *ordercache.Layer
}

// NewListOrdersQueryHandler creates a handler for summary list reads.
func NewListOrdersQueryHandler(db *gorm.DB, cache *ordercache.Layer) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, cache: cache}
}

// Handle executes the list read.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	key := ordercache.SummaryListKey(query.Page(), query.PageSize(), ordercache.ListFilter{
		CustomerID: filter.CustomerID,
		VendorID:   filter.VendorID,
		Status:     filter.Status,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	})

	cached := make([]OrderSummaryResponse, 0)
	if h.cache.GetSummaries(ctx, key, &cached) {
		return cached, nil
	}

	summaries, err := h.loadSummaries(ctx, query)
	if err != nil {
		return nil, err
	}

	if err = h.cache.SetSummaries(ctx, key, summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (h ListOrdersQueryHandler) loadSummaries(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderSummaryResponse, error) {
	sql := `
		SELECT
			o.id,
			o.order_number,
			o.customer_id,
			COALESCE(c.name, ?),
			o.vendor_id,
			o.status,
			o.total_amount,
			o.order_date,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id)
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE 1 = 1
	`
	args := []any{UnknownCustomerName}

	filter := query.Filter()
	if filter.CustomerID != nil {
		sql += " AND o.customer_id = ?"
		args = append(args, filter.CustomerID.Bytes())
	}
	if filter.VendorID != nil {
		sql += " AND o.vendor_id = ?"
		args = append(args, filter.VendorID.Bytes())
	}
	if filter.Status != nil {
		sql += " AND o.status = ?"
		args = append(args, int(*filter.Status))
	}
	if filter.FromDate != nil {
		sql += " AND o.order_date >= ?"
		args = append(args, filter.FromDate.UTC())
	}
	if filter.ToDate != nil {
		sql += " AND o.order_date <= ?"
		args = append(args, filter.ToDate.UTC())
	}

	sql += " ORDER BY o.order_date DESC LIMIT ? OFFSET ?"
	args = append(args, query.PageSize(), (query.Page()-1)*query.PageSize())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummaryResponse, 0, query.PageSize())
	for rows.Next() {
		var (
			summary OrderSummaryResponse
			status  int
		)
		err = rows.Scan(
			&summary.ID,
			&summary.OrderNumber,
			&summary.CustomerID,
			&summary.CustomerName,
			&summary.VendorID,
			&status,
			&summary.TotalAmount,
			&summary.OrderDate,
			&summary.ItemCount,
		)
		if err != nil {
			return nil, err
		}

		summary.Status = order.Status(status).String()
		summary.VendorName = UnknownVendorName
		summaries = append(summaries, summary)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}
