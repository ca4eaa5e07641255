// Package queries contains read operations in the CQRS architecture.
// Query handlers read the database directly and return denormalized
// projections; they never load or mutate domain aggregates.
package queries

import (
	"time"

	"orders/internal/core/domain/model/customer"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Placeholder labels used when a referenced customer or vendor cannot be
// resolved. A missing reference degrades the projection, it never fails the read.
const (
	UnknownCustomerName = "Unknown Customer"
	UnknownVendorName   = "Unknown Vendor"
)

// OrderSummaryResponse is the list projection of an order.
type OrderSummaryResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerID   uuid.UUID       `json:"customerId"`
	CustomerName string          `json:"customerName"`
	VendorID     uuid.UUID       `json:"vendorId"`
	VendorName   string          `json:"vendorName"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	OrderDate    time.Time       `json:"orderDate"`
	ItemCount    int             `json:"itemCount"`
}

// OrderItemResponse is one line item within a detail projection.
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// OrderDetailResponse is the full projection of one order.
type OrderDetailResponse struct {
	OrderSummaryResponse

	CustomerEmail string              `json:"customerEmail"`
	VendorEmail   string              `json:"vendorEmail"`
	Notes         string              `json:"notes"`
	UpdatedAt     *time.Time          `json:"updatedAt"`
	Items         []OrderItemResponse `json:"items"`
}

// NewOrderDetailResponse builds a detail projection from an aggregate and its
// resolved references. A nil customer or vendor degrades to placeholder
// labels instead of failing.
func NewOrderDetailResponse(o *order.Order, cust *customer.Customer, vendor *ports.VendorInfo) OrderDetailResponse {
	resp := OrderDetailResponse{
		OrderSummaryResponse: OrderSummaryResponse{
			ID:           o.ID().Bytes(),
			OrderNumber:  o.OrderNumber(),
			CustomerID:   o.CustomerID().Bytes(),
			CustomerName: UnknownCustomerName,
			VendorID:     o.VendorID().Bytes(),
			VendorName:   UnknownVendorName,
			Status:       o.Status().String(),
			TotalAmount:  o.TotalAmount().Decimal(),
			OrderDate:    o.OrderDate(),
			ItemCount:    o.ItemCount(),
		},
		Notes:     o.Notes(),
		UpdatedAt: o.UpdatedAt(),
		Items:     make([]OrderItemResponse, 0, o.ItemCount()),
	}

	if cust != nil {
		resp.CustomerName = cust.Name()
		resp.CustomerEmail = cust.Email()
	}
	if vendor != nil {
		resp.VendorName = vendor.Name
		resp.VendorEmail = vendor.Email
	}

	for _, item := range o.Items() {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:          item.ID().Bytes(),
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Decimal(),
			TotalPrice:  item.LineTotal().Decimal(),
		})
	}
	return resp
}
