package ordercache

import (
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// Default list parameters. A list read with exactly these parameters is
// cached under the base summary key, so the write-path invalidation of base
// keys covers the most common read.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// DetailKey returns the cache key for one order's detail projection.
func DetailKey(orderID kernel.UUID) string {
	return "order_detail_" + orderID.String()
}

// CustomerSummaryKey returns the base summary key for one customer's orders.
func CustomerSummaryKey(customerID kernel.UUID) string {
	return "orders_summary_customer_" + customerID.String()
}

// VendorSummaryKey returns the base summary key for one vendor's orders.
func VendorSummaryKey(vendorID kernel.UUID) string {
	return "orders_summary_vendor_" + vendorID.String()
}

// AllSummaryKey returns the base summary key for the unfiltered order list.
func AllSummaryKey() string {
	return "orders_summary_all"
}

// ListFilter narrows a summary list read. Nil fields mean "no filter".
type ListFilter struct {
	CustomerID *kernel.UUID
	VendorID   *kernel.UUID
	Status     *order.Status
	FromDate   *time.Time
	ToDate     *time.Time
}

// SummaryListKey returns the cache key for a parameterized list read.
//
// The base key follows the narrowest ID filter (customer beats vendor beats
// all); paging and the remaining filters append as suffix segments. A read
// with default paging and no extra filters uses the bare base key, which is
// exactly the key the write path invalidates.
func SummaryListKey(page, pageSize int, filter ListFilter) string {
	key := AllSummaryKey()
	switch {
	case filter.CustomerID != nil:
		key = CustomerSummaryKey(*filter.CustomerID)
	case filter.VendorID != nil:
		key = VendorSummaryKey(*filter.VendorID)
	}

	defaults := page == DefaultPage && pageSize == DefaultPageSize &&
		filter.Status == nil && filter.FromDate == nil && filter.ToDate == nil
	if defaults {
		return key
	}

	key += fmt.Sprintf(":p%d:s%d", page, pageSize)
	if filter.Status != nil {
		key += ":st_" + filter.Status.String()
	}
	if filter.FromDate != nil {
		key += ":f_" + filter.FromDate.UTC().Format("20060102")
	}
	if filter.ToDate != nil {
		key += ":t_" + filter.ToDate.UTC().Format("20060102")
	}
	return key
}
