package customerrepo

import (
	"time"

	"orders/internal/core/domain/model/customer"
	"orders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure of the customer reference table.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	Phone     string
	Address   string
	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (CustomerDTO) TableName() string {
	return "customers"
}

// toDomain converts a database DTO to a customer entity.
func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.Name, dto.Email, dto.Phone, dto.Address, dto.CreatedAt)
}
