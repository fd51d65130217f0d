package transfer

import (
	"errors"
	"strings"
	"time"

	apperrors "ledger/internal/errors"

	"github.com/shopspring/decimal"
)

// Result labels for RecordTransfer.
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransfer(string, decimal.Decimal, time.Duration) {}
func (n *NoopMetricsCollector) RecordLockWait(time.Duration)                          {}
func (n *NoopMetricsCollector) RecordNotificationFailure()                            {}

// resultLabel maps a transfer outcome to a low-cardinality label.
func resultLabel(err error) string {
	if err == nil {
		return ResultSuccess
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return strings.ToLower(domainErr.Code)
	}
	return ResultFailed
}
