package transfer

import (
	"pointbank/internal/models"
)

// ListResult is one page of a user's transfer history plus the total count
// of matching rows for pagination UIs.
type ListResult struct {
	Data     []models.Transfer `json:"data"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Total    int64             `json:"total"`
}

// MetricsCollector receives operational metrics from the orchestrator.
type MetricsCollector interface {
	RecordTransfer(status models.TransferStatus, amount int64)
	RecordError(operation, errType string)
}
