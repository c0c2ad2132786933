package globalbills

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/dto/responses"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
	"fmt"

	"go.uber.org/zap"
)

type globalBillUsecase struct {
	GlobalBillClient   contracts.GlobalBillClient
	ConsommationClient contracts.ConsommationClient
	Reporter           contracts.AuditReporter
	Log                *zap.Logger
}

func NewGlobalBillUsecase(
	globalBillClient contracts.GlobalBillClient,
	consommationClient contracts.ConsommationClient,
	reporter contracts.AuditReporter,
	logger *zap.Logger,
) contracts.GlobalBillUsecase {
	return &globalBillUsecase{
		GlobalBillClient:   globalBillClient,
		ConsommationClient: consommationClient,
		Reporter:           reporter,
		Log:                logger,
	}
}

func (uc *globalBillUsecase) AggregateTotals(ctx context.Context, globalBillID int) *responses.BillTotals {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("globalBillUsecase.AggregateTotals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingGlobalBillIDKey, globalBillID),
	)

	unknown := func(cause string) *responses.BillTotals {
		uc.Reporter.ReportDataQuality(ctx, &contracts.DataQualityEvent{
			Kind:         contracts.AuditKindAggregationFailure,
			Detail:       "bill totals could not be computed",
			GlobalBillID: globalBillID,
			Cause:        cause,
		})
		// Zero amounts with no status mean "unknown", never "fully paid".
		return &responses.BillTotals{}
	}

	children, err := uc.ConsommationClient.SearchConsommations(ctx, contracts.ConsommationSearchParams{
		GlobalBillID: globalBillID,
	})
	if err != nil {
		return unknown(fmt.Sprintf("consommation list failed: %v", err))
	}

	var totalBilled, totalPaid, patientShareTotal float64
	for index := range children {
		totalBilled += children[index].BilledTotal()
		totalPaid += children[index].PaidAmount()
		patientShareTotal += children[index].PatientShareAmount()
	}

	// Recorded patient-share amounts are backend-computed and insurance
	// adjusted, so they win when present; older records omit them, and the
	// raw billed total avoids reporting zero due for missing data.
	referenceTotal := totalBilled
	if patientShareTotal > 0 {
		referenceTotal = patientShareTotal
	}

	dueAmount := referenceTotal - totalPaid
	if dueAmount < 0 {
		dueAmount = 0
	}

	status := ""
	if len(children) > 0 {
		status = children[0].PaymentStatus
	}
	if status == "" {
		globalBill, err := uc.GlobalBillClient.FindGlobalBillByID(ctx, globalBillID)
		if err != nil {
			return unknown(fmt.Sprintf("parent bill fetch failed: %v", err))
		}
		if globalBill.Closed {
			status = constvars.BillStatusClosed
		} else {
			status = constvars.BillStatusOpen
		}
	}

	return &responses.BillTotals{
		DueAmount:  dueAmount,
		PaidAmount: totalPaid,
		Status:     status,
	}
}

func (uc *globalBillUsecase) ListConsommations(ctx context.Context, globalBillID int) ([]openmrsdto.Consommation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("globalBillUsecase.ListConsommations called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingGlobalBillIDKey, globalBillID),
	)

	return uc.ConsommationClient.SearchConsommations(ctx, contracts.ConsommationSearchParams{
		GlobalBillID: globalBillID,
	})
}
