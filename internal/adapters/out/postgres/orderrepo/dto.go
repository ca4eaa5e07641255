// Package orderrepo persists order aggregates with GORM, mapping between the
// domain model and the relational representation. The order table carries a
// version column for optimistic concurrency; items live in their own table
// and are replaced wholesale on update.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// TotalAmount is stored for query-side reads but never trusted on restore;
// the aggregate recomputes it from the items.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber string          `gorm:"uniqueIndex;not null"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	VendorID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Status      int             `gorm:"index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	OrderDate   time.Time       `gorm:"index"`
	Notes       string
	UpdatedAt   *time.Time
	Version     int `gorm:"not null;default:1"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line item row.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2)"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(14,2)"`
	UpdatedAt   *time.Time
}

// TableName overrides GORM's default naming convention.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
// Items are mapped separately by the repository so that creates and wholesale
// item replacement share one code path.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID().Bytes(),
		OrderNumber: o.OrderNumber(),
		CustomerID:  o.CustomerID().Bytes(),
		VendorID:    o.VendorID().Bytes(),
		Status:      int(o.Status()),
		TotalAmount: o.TotalAmount().Decimal(),
		OrderDate:   o.OrderDate(),
		Notes:       o.Notes(),
		UpdatedAt:   o.UpdatedAt(),
		Version:     o.Version(),
	}
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder, which revalidates the restored state.
func toDomain(dto OrderDTO, itemDTOs []OrderItemDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		vendorID,
		order.Status(dto.Status),
		dto.Notes,
		dto.OrderDate,
		dto.UpdatedAt,
		dto.Version,
		items,
	)
}

func itemToDomain(dto OrderItemDTO) (*order.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrderItem(
		id,
		productID,
		dto.ProductName,
		dto.Quantity,
		kernel.NewMoneyFromDecimal(dto.UnitPrice),
		dto.UpdatedAt,
	)
}
