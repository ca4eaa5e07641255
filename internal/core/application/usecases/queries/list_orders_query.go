package queries

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// Paging bounds for list reads.
const (
	MinPage     = 1
	MaxPage     = 10000
	MinPageSize = 1
	MaxPageSize = 100
)

// ListOrdersFilter narrows a list read. Nil fields mean "no filter".
type ListOrdersFilter struct {
	CustomerID *kernel.UUID
	VendorID   *kernel.UUID
	Status     *order.Status
	FromDate   *time.Time
	ToDate     *time.Time
}

// ListOrdersQuery requests a page of order summaries, optionally filtered by
// customer, vendor, status, and order-date range.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	page     int
	pageSize int
	filter   ListOrdersFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a list query. Page and page size must fall
// within the declared bounds; filter IDs and status are validated when present.
func NewListOrdersQuery(page, pageSize int, filter ListOrdersFilter) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setPage(page),
		q.setPageSize(pageSize),
		q.setFilter(filter),
	); err != nil {
		return ListOrdersQuery{}, err
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Page returns the requested page, starting at 1.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the requested page size.
func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

// Filter returns the requested filters.
func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}

func (q *ListOrdersQuery) setPage(page int) error {
	if page < MinPage || page > MaxPage {
		return errs.NewValueIsOutOfRangeError("page", page, MinPage, MaxPage)
	}
	q.page = page
	return nil
}

func (q *ListOrdersQuery) setPageSize(pageSize int) error {
	if pageSize < MinPageSize || pageSize > MaxPageSize {
		return errs.NewValueIsOutOfRangeError("pageSize", pageSize, MinPageSize, MaxPageSize)
	}
	q.pageSize = pageSize
	return nil
}

func (q *ListOrdersQuery) setFilter(filter ListOrdersFilter) error {
	if filter.CustomerID != nil {
		if err := filter.CustomerID.Validate(); err != nil {
			return err
		}
	}
	if filter.VendorID != nil {
		if err := filter.VendorID.Validate(); err != nil {
			return err
		}
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return err
		}
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return errs.NewValueIsInvalidErrorWithCause("dateRange",
			fmt.Errorf("toDate %s is before fromDate %s",
				filter.ToDate.Format(time.DateOnly), filter.FromDate.Format(time.DateOnly)))
	}

	q.filter = filter
	return nil
}
