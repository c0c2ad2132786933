package contracts

import (
	"billsync-service/internal/pkg/dto/responses"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
)

type GlobalBillClient interface {
	FindGlobalBillByID(ctx context.Context, globalBillID int) (*openmrsdto.GlobalBill, error)
}

type GlobalBillUsecase interface {
	// AggregateTotals recomputes due/paid/status from the global bill's
	// consommations. It never returns an error: any backend failure degrades
	// to the zero BillTotals with empty status, which callers must treat as
	// unknown.
	AggregateTotals(ctx context.Context, globalBillID int) *responses.BillTotals

	// ListConsommations is the pass-through used by the bill view to show the
	// per-department sub-bills of an admission.
	ListConsommations(ctx context.Context, globalBillID int) ([]openmrsdto.Consommation, error)
}
