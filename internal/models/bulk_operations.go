package models

import "time"

// BulkOperationError records one failed row in a bulk operation.
type BulkOperationError struct {
	ItemIndex int    `json:"item_index"`
	ItemID    string `json:"item_id"`
	Error     string `json:"error"`
}

// BulkOperationResult summarizes a bulk operation. Bulk operations are
// partial-failure tolerant: per-row errors accumulate here and the batch
// as a whole still succeeds. Rows skipped as duplicates count only as
// skipped, never as errors.
type BulkOperationResult struct {
	OperationID    string               `json:"operation_id"`
	Status         string               `json:"status"` // completed, partial
	TotalItems     int                  `json:"total_items"`
	ProcessedItems int                  `json:"processed_items"`
	SkippedItems   int                  `json:"skipped_items"`
	FailedItems    int                  `json:"failed_items"`
	Errors         []BulkOperationError `json:"errors"`
	StartTime      time.Time            `json:"start_time"`
	CompletionTime *time.Time           `json:"completion_time,omitempty"`
}

// Finish stamps the completion time and final status.
func (r *BulkOperationResult) Finish() {
	r.Status = "completed"
	if r.FailedItems > 0 && r.ProcessedItems > 0 {
		r.Status = "partial"
	}
	now := time.Now()
	r.CompletionTime = &now
}
