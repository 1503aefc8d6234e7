package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
)

// StockAlertService scans for conditions operators should act on: stock
// rows at or under their minimum level, and audit sessions left open far
// past their initiation time.
type StockAlertService struct {
	stockRepo     repositories.StockRepository
	productRepo   repositories.ProductRepository
	warehouseRepo repositories.WarehouseRepository
}

type LowStockAlert struct {
	ProductID    uuid.UUID
	WarehouseID  uuid.UUID
	ProductName  string
	CurrentStock int
	Threshold    int
}

func NewStockAlertService(stockRepo repositories.StockRepository, productRepo repositories.ProductRepository, warehouseRepo repositories.WarehouseRepository) *StockAlertService {
	return &StockAlertService{
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// CheckLowStock returns every stock row at or below its effective
// threshold; rows with no per-row minimum fall back to the given default.
func (a *StockAlertService) CheckLowStock(ctx context.Context, fallbackThreshold int) ([]LowStockAlert, error) {
	if fallbackThreshold <= 0 {
		fallbackThreshold = 10
	}

	stocks, err := a.stockRepo.ListBelowMinLevel(ctx, fallbackThreshold)
	if err != nil {
		log.Printf("Failed to list low stock rows: %v", err)
		return nil, err
	}

	var alerts []LowStockAlert
	for _, stock := range stocks {
		threshold := stock.MinStockLevel
		if threshold <= 0 {
			threshold = fallbackThreshold
		}

		name := ""
		if product, err := a.productRepo.GetByID(ctx, stock.ProductID); err == nil {
			name = product.Name
		} else {
			log.Printf("Failed to get product %s: %v", stock.ProductID.String(), err)
		}

		alerts = append(alerts, LowStockAlert{
			ProductID:    stock.ProductID,
			WarehouseID:  stock.WarehouseID,
			ProductName:  name,
			CurrentStock: stock.Quantity,
			Threshold:    threshold,
		})
	}
	return alerts, nil
}

// LogLowStockAlerts writes the alert set to the application log.
func (a *StockAlertService) LogLowStockAlerts(alerts []LowStockAlert) {
	if len(alerts) == 0 {
		log.Println("No low stock alerts")
		return
	}
	log.Printf("Low stock alerts: %d rows", len(alerts))
	for _, alert := range alerts {
		log.Printf("- Product '%s' in warehouse %s has %d units (threshold: %d)",
			alert.ProductName,
			alert.WarehouseID.String(),
			alert.CurrentStock,
			alert.Threshold)
	}
}

// CheckStaleAuditSessions flags warehouses whose audit has been
// in_progress longer than maxAge. A forgotten session blocks managers
// from nothing, but it leaves the warehouse accepting physical counts
// against drifting system quantities.
func (a *StockAlertService) CheckStaleAuditSessions(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	warehouses, err := a.warehouseRepo.ListStaleAuditSessions(ctx, cutoff)
	if err != nil {
		log.Printf("Failed to list stale audit sessions: %v", err)
		return err
	}

	for _, w := range warehouses {
		age := "unknown"
		if w.AuditInitiatedAt != nil {
			age = time.Since(*w.AuditInitiatedAt).Round(time.Hour).String()
		}
		log.Printf("ALERT: Warehouse %s has an audit session open for %s", w.Code, age)
	}
	return nil
}

// RunScan is the scheduled entry point covering both checks.
func (a *StockAlertService) RunScan(ctx context.Context, fallbackThreshold int, staleAfter time.Duration) error {
	log.Println("Starting stock alert scan")

	alerts, err := a.CheckLowStock(ctx, fallbackThreshold)
	if err != nil {
		return err
	}
	a.LogLowStockAlerts(alerts)

	if err := a.CheckStaleAuditSessions(ctx, staleAfter); err != nil {
		return err
	}

	log.Println("Stock alert scan completed")
	return nil
}
