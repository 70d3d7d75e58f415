package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/warebase/warebase/internal/catalog"
	_ "github.com/warebase/warebase/internal/testing/guard"
)

type stubLister struct {
	products []catalog.Product
}

func (s stubLister) LowStock(ctx context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

func TestLowStockScanPublishesReport(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	job := NewLowStockScanJob(stubLister{products: []catalog.Product{
		{ID: 3, Name: "Shampoo 3", SKU: "10000003", Stock: 4, LowStockThreshold: 10},
		{ID: 9, Name: "Shampoo 9", SKU: "10000009", Stock: 0, LowStockThreshold: 10},
	}}, client, nil)

	require.NoError(t, job.Handle(context.Background(), NewLowStockScanTask()))

	raw, err := mr.Get(LowStockReportKey)
	require.NoError(t, err)

	var report struct {
		Alerts []struct {
			ProductID int64  `json:"product_id"`
			SKU       string `json:"sku"`
			Stock     int    `json:"stock"`
		} `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &report))
	require.Len(t, report.Alerts, 2)
	require.Equal(t, int64(3), report.Alerts[0].ProductID)
	require.Equal(t, "10000003", report.Alerts[0].SKU)

	ttl := mr.TTL(LowStockReportKey)
	require.Equal(t, lowStockReportTTL, ttl)
}

func TestLowStockScanEmptyCatalog(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	job := NewLowStockScanJob(stubLister{}, client, nil)
	require.NoError(t, job.Handle(context.Background(), NewLowStockScanTask()))

	raw, err := mr.Get(LowStockReportKey)
	require.NoError(t, err)
	require.Contains(t, raw, `"alerts":[]`)
}
