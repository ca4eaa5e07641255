package ordercache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"orders/internal/core/application/ordercache"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct{ mock.Mock }

func (m *MockCache) Get(ctx context.Context, key string, dest any) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) TimeToLive(ctx context.Context, key string) (*time.Duration, error) {
	args := m.Called(ctx, key)
	ttl, _ := args.Get(0).(*time.Duration)
	return ttl, args.Error(1)
}

func (m *MockCache) HashGet(ctx context.Context, key, field string, dest any) error {
	args := m.Called(ctx, key, field, dest)
	return args.Error(0)
}

func (m *MockCache) HashSet(ctx context.Context, key, field string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, field, value, ttl)
	return args.Error(0)
}

func (m *MockCache) HashRemove(ctx context.Context, key, field string) error {
	args := m.Called(ctx, key, field)
	return args.Error(0)
}

func (m *MockCache) Flush(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) Size(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newLayer(cache ports.Cache) *ordercache.Layer {
	return ordercache.NewLayer(cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLayer_GetDetail(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("hit", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", mock.Anything, ordercache.DetailKey(orderID), mock.Anything).Return(nil).Once()

		var dest struct{}
		assert.True(t, newLayer(cache).GetDetail(t.Context(), orderID, &dest))
		cache.AssertExpectations(t)
	})

	t.Run("miss", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(ports.ErrCacheMiss).Once()

		var dest struct{}
		assert.False(t, newLayer(cache).GetDetail(t.Context(), orderID, &dest))
	})

	t.Run("read_error_is_a_miss", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("connection refused")).Once()

		var dest struct{}
		assert.False(t, newLayer(cache).GetDetail(t.Context(), orderID, &dest))
	})
}

func TestLayer_SetDetail(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("uses_detail_ttl", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Set", mock.Anything, ordercache.DetailKey(orderID), "v", ordercache.DetailTTL).
			Return(nil).Once()

		require.NoError(t, newLayer(cache).SetDetail(t.Context(), orderID, "v"))
		cache.AssertExpectations(t)
	})

	t.Run("write_error_is_unavailable", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("connection refused")).Once()

		err := newLayer(cache).SetDetail(t.Context(), orderID, "v")
		require.ErrorIs(t, err, errs.ErrUnavailable)
	})
}

func TestLayer_SetSummaries(t *testing.T) {
	cache := new(MockCache)
	cache.On("Set", mock.Anything, ordercache.AllSummaryKey(), "v", ordercache.SummaryTTL).
		Return(nil).Once()

	require.NoError(t, newLayer(cache).SetSummaries(t.Context(), ordercache.AllSummaryKey(), "v"))
	cache.AssertExpectations(t)
}

func TestLayer_InvalidateDetail(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("removes_detail_key", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Remove", mock.Anything, ordercache.DetailKey(orderID)).Return(nil).Once()

		require.NoError(t, newLayer(cache).InvalidateDetail(t.Context(), orderID))
		cache.AssertExpectations(t)
	})

	t.Run("remove_error_is_unavailable", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Remove", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

		err := newLayer(cache).InvalidateDetail(t.Context(), orderID)
		require.ErrorIs(t, err, errs.ErrUnavailable)
	})
}

func TestLayer_InvalidateSummaries(t *testing.T) {
	customerID := kernel.NewUUID()
	vendorID := kernel.NewUUID()

	cache := new(MockCache)
	cache.On("Remove", mock.Anything, ordercache.CustomerSummaryKey(customerID)).Return(nil).Once()
	cache.On("Remove", mock.Anything, ordercache.VendorSummaryKey(vendorID)).Return(nil).Once()
	cache.On("Remove", mock.Anything, ordercache.AllSummaryKey()).Return(nil).Once()

	require.NoError(t, newLayer(cache).InvalidateSummaries(t.Context(), customerID, vendorID))
	cache.AssertExpectations(t)
}

func TestSummaryListKey(t *testing.T) {
	customerID := kernel.NewUUID()
	vendorID := kernel.NewUUID()

	t.Run("defaults_collapse_to_base_key", func(t *testing.T) {
		key := ordercache.SummaryListKey(ordercache.DefaultPage, ordercache.DefaultPageSize, ordercache.ListFilter{})
		assert.Equal(t, ordercache.AllSummaryKey(), key)

		key = ordercache.SummaryListKey(1, 10, ordercache.ListFilter{CustomerID: &customerID})
		assert.Equal(t, ordercache.CustomerSummaryKey(customerID), key)

		key = ordercache.SummaryListKey(1, 10, ordercache.ListFilter{VendorID: &vendorID})
		assert.Equal(t, ordercache.VendorSummaryKey(vendorID), key)
	})

	t.Run("customer_filter_beats_vendor_filter", func(t *testing.T) {
		key := ordercache.SummaryListKey(1, 10, ordercache.ListFilter{CustomerID: &customerID, VendorID: &vendorID})
		assert.Equal(t, ordercache.CustomerSummaryKey(customerID), key)
	})

	t.Run("paging_appends_suffix", func(t *testing.T) {
		key := ordercache.SummaryListKey(2, 25, ordercache.ListFilter{})
		assert.Equal(t, ordercache.AllSummaryKey()+":p2:s25", key)
	})

	t.Run("filters_append_suffix_segments", func(t *testing.T) {
		status := order.Confirmed
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

		key := ordercache.SummaryListKey(1, 10, ordercache.ListFilter{
			Status:   &status,
			FromDate: &from,
			ToDate:   &to,
		})
		assert.Equal(t, ordercache.AllSummaryKey()+":p1:s10:st_Confirmed:f_20260301:t_20260331", key)
	})
}
