package contracts

import "context"

// Data-quality event kinds reported during reconciliation.
const (
	AuditKindMissingRate        = "missing_rate"
	AuditKindMissingPolicy      = "missing_policy"
	AuditKindNameMatchFallback  = "name_match_fallback"
	AuditKindResolutionDefault  = "resolution_defaulted"
	AuditKindAggregationFailure = "aggregation_failure"
	AuditKindItemCountMismatch  = "item_count_mismatch"
	AuditKindCreateRecovered    = "create_recovered"
	AuditKindStatusLookupFailed = "status_lookup_failed"
)

// DataQualityEvent describes a non-fatal reconciliation finding. Events are
// warnings for operators, never errors for callers.
type DataQualityEvent struct {
	Kind           string `json:"kind"`
	Detail         string `json:"detail"`
	ConsommationID int    `json:"consommation_id,omitempty"`
	GlobalBillID   int    `json:"global_bill_id,omitempty"`
	Cause          string `json:"cause,omitempty"`
}

// AuditReporter receives data-quality events. Implementations must be
// best-effort and non-blocking for the reconciliation path: a sink failure is
// logged and swallowed.
type AuditReporter interface {
	ReportDataQuality(ctx context.Context, event *DataQualityEvent)
}
