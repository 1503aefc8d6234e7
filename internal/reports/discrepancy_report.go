package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
)

const presignedURLExpiry = 24 * time.Hour

// DiscrepancyReport describes one exported report artifact.
type DiscrepancyReport struct {
	WarehouseID  uuid.UUID `json:"warehouse_id"`
	ObjectName   string    `json:"object_name"`
	DownloadURL  string    `json:"download_url"`
	RowCount     int       `json:"row_count"`
	TotalAbsDiff int       `json:"total_abs_discrepancy"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// ReportService exports a warehouse's full audit trail as a CSV object
// and hands back a time-limited download URL.
type ReportService interface {
	ExportDiscrepancies(ctx context.Context, p common.Principal, warehouseID uuid.UUID) (*DiscrepancyReport, error)
}

type reportService struct {
	auditRepo     repositories.AuditRepository
	warehouseRepo repositories.WarehouseRepository
	productRepo   repositories.ProductRepository
	scopeSvc      services.ScopeService
	store         ObjectStore
	bucket        string
}

func NewReportService(
	auditRepo repositories.AuditRepository,
	warehouseRepo repositories.WarehouseRepository,
	productRepo repositories.ProductRepository,
	scopeSvc services.ScopeService,
	store ObjectStore,
	bucket string,
) ReportService {
	return &reportService{
		auditRepo:     auditRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		scopeSvc:      scopeSvc,
		store:         store,
		bucket:        bucket,
	}
}

func (s *reportService) ExportDiscrepancies(ctx context.Context, p common.Principal, warehouseID uuid.UUID) (*DiscrepancyReport, error) {
	if p.Role == models.RoleAuditor {
		return nil, fmt.Errorf("%w: auditors cannot export reports", common.ErrForbidden)
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}
	if err := s.scopeSvc.AuthorizeWrite(p, warehouse.OrganizationID, warehouse.ID); err != nil {
		return nil, err
	}

	audits, err := s.auditRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	body, totalAbs, err := s.renderCSV(ctx, audits)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	objectName := fmt.Sprintf("discrepancies/%s/%s.csv", warehouse.Code, now.Format("2006-01-02T15-04-05"))

	if err := s.store.EnsureBucketExists(ctx, s.bucket); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	if err := s.store.Upload(ctx, s.bucket, objectName, "text/csv", bytes.NewReader(body), int64(len(body))); err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}

	url, err := s.store.GetPresignedURL(ctx, s.bucket, objectName, presignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign report: %w", err)
	}

	return &DiscrepancyReport{
		WarehouseID:  warehouseID,
		ObjectName:   objectName,
		DownloadURL:  url,
		RowCount:     len(audits),
		TotalAbsDiff: totalAbs,
		GeneratedAt:  now,
	}, nil
}

func (s *reportService) renderCSV(ctx context.Context, audits []*models.Audit) ([]byte, int, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"audit_id", "recorded_at", "product_sku", "product_name", "system_quantity", "physical_quantity", "discrepancy", "auditor_id", "notes"}
	if err := w.Write(header); err != nil {
		return nil, 0, err
	}

	productNames := map[uuid.UUID][2]string{}
	totalAbs := 0
	for _, a := range audits {
		names, ok := productNames[a.ProductID]
		if !ok {
			product, err := s.productRepo.GetByID(ctx, a.ProductID)
			if err != nil {
				// Product may have been deleted since the count; keep the row.
				names = [2]string{"", ""}
			} else {
				names = [2]string{product.SKU, product.Name}
			}
			productNames[a.ProductID] = names
		}

		notes := ""
		if a.Notes != nil {
			notes = *a.Notes
		}
		row := []string{
			a.ID.String(),
			a.CreatedAt.Format(time.RFC3339),
			names[0],
			names[1],
			strconv.Itoa(a.SystemQuantity),
			strconv.Itoa(a.PhysicalQuantity),
			strconv.Itoa(a.Discrepancy),
			a.AuditorID.String(),
			notes,
		}
		if err := w.Write(row); err != nil {
			return nil, 0, err
		}

		if a.Discrepancy < 0 {
			totalAbs -= a.Discrepancy
		} else {
			totalAbs += a.Discrepancy
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), totalAbs, nil
}
