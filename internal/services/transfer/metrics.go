package transfer

import "pointbank/internal/models"

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransfer(models.TransferStatus, int64) {}
func (n *NoopMetricsCollector) RecordError(string, string)                  {}
