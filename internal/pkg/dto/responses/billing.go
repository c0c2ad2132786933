package responses

import "billsync-service/internal/pkg/openmrsdto"

// RateResolution is the outcome of the insurance-rate fallback chain.
// InsuranceRate + PatientRate always equals 100. Resolved distinguishes a
// real "not insured" answer from a defaulted one after every source failed;
// callers must not render a defaulted result as an authoritative zero rate.
type RateResolution struct {
	InsuranceRate float64 `json:"insurance_rate"`
	PatientRate   float64 `json:"patient_rate"`
	InsuranceName string  `json:"insurance_name,omitempty"`
	Resolved      bool    `json:"resolved"`
}

// BillTotals is the recomputed aggregate over a global bill's consommations.
// A zero-value struct with empty Status means "unknown", not "fully paid".
type BillTotals struct {
	DueAmount  float64 `json:"due_amount"`
	PaidAmount float64 `json:"paid_amount"`
	Status     string  `json:"status,omitempty"`
}

// CreatedConsommation reports a create, including how it concluded.
// ExpectedItemCount vs ActualItemsReturned surfaces silent truncation by the
// backend; a mismatch is metadata for the caller, not an error.
type CreatedConsommation struct {
	Consommation        *openmrsdto.Consommation `json:"consommation,omitempty"`
	ConsommationID      int                      `json:"consommation_id"`
	ExpectedItemCount   int                      `json:"expected_item_count"`
	ActualItemsReturned int                      `json:"actual_items_returned"`
	Recovered           bool                     `json:"recovered"`
	Partial             bool                     `json:"partial"`
}

// PaymentStatusMap maps consommation id to paid flag. It is rebuilt in full
// on every poll; ids whose lookup failed are present and false.
type PaymentStatusMap map[int]bool
