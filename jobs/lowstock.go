// Package jobs runs background tasks on the Asynq worker.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/warebase/warebase/internal/catalog"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan is the task type for the periodic low stock scan.
	TaskLowStockScan = "catalog:low_stock_scan"
	// LowStockReportKey is the Redis key holding the latest scan snapshot.
	LowStockReportKey = "reports:low_stock"
	// lowStockReportTTL bounds how long a stale snapshot survives a dead worker.
	lowStockReportTTL = 24 * time.Hour
)

// NewLowStockScanTask constructs the scan task.
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskLowStockScan, nil)
}

// LowStockLister yields products at or below their threshold. Satisfied by
// *catalog.Service.
type LowStockLister interface {
	LowStock(ctx context.Context) ([]catalog.Product, error)
}

// LowStockScanJob scans the catalog and publishes an alert snapshot to Redis.
type LowStockScanJob struct {
	products LowStockLister
	redis    *redis.Client
	logger   *slog.Logger
}

// NewLowStockScanJob constructs the job.
func NewLowStockScanJob(products LowStockLister, client *redis.Client, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{products: products, redis: client, logger: logger}
}

type lowStockAlert struct {
	ProductID         int64  `json:"product_id"`
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	Stock             int    `json:"stock"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

type lowStockReport struct {
	ScannedAt time.Time       `json:"scanned_at"`
	Alerts    []lowStockAlert `json:"alerts"`
}

// Handle processes TaskLowStockScan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	products, err := j.products.LowStock(ctx)
	if err != nil {
		return err
	}

	report := lowStockReport{ScannedAt: time.Now().UTC(), Alerts: make([]lowStockAlert, 0, len(products))}
	for _, p := range products {
		report.Alerts = append(report.Alerts, lowStockAlert{
			ProductID:         p.ID,
			Name:              p.Name,
			SKU:               p.SKU,
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
		})
	}

	data, err := json.Marshal(report)
	if err != nil {
		return asynq.SkipRetry
	}
	if err := j.redis.Set(ctx, LowStockReportKey, data, lowStockReportTTL).Err(); err != nil {
		return err
	}

	if j.logger != nil {
		j.logger.Info("low stock scan complete", slog.Int("alerts", len(report.Alerts)))
	}
	return nil
}
