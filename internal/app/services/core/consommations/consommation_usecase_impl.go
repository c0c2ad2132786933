package consommations

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/dto/requests"
	"billsync-service/internal/pkg/dto/responses"
	"billsync-service/internal/pkg/exceptions"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// UnitPriceEpsilon is added to every submitted unit price, always and
// exactly. It works around a tolerance bug in the backend's
// floating-point-vs-decimal comparison; remove only once that backend defect
// is fixed.
const UnitPriceEpsilon = 1e-6

type consommationUsecase struct {
	ConsommationClient contracts.ConsommationClient
	Reporter           contracts.AuditReporter
	Log                *zap.Logger
}

func NewConsommationUsecase(
	consommationClient contracts.ConsommationClient,
	reporter contracts.AuditReporter,
	logger *zap.Logger,
) contracts.ConsommationUsecase {
	return &consommationUsecase{
		ConsommationClient: consommationClient,
		Reporter:           reporter,
		Log:                logger,
	}
}

func (uc *consommationUsecase) CreateWithRecovery(ctx context.Context, request *requests.CreateConsommation) (*responses.CreatedConsommation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	payload := buildCreatePayload(request)
	expectedItemCount := len(payload.BillItems)

	uc.Log.Info("consommationUsecase.CreateWithRecovery called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingGlobalBillIDKey, request.GlobalBillID),
		zap.Int("expected_item_count", expectedItemCount),
	)

	recovered := false
	consommationID := 0

	created, err := uc.ConsommationClient.CreateConsommation(ctx, payload)
	switch {
	case err == nil && created.ConsommationID > 0:
		consommationID = created.ConsommationID

	case err == nil:
		// The call "succeeded" but the response carries no id, which is the
		// serialization defect with a 2xx status. Same treatment as an
		// ambiguous failure.
		uc.Log.Warn("consommationUsecase.CreateWithRecovery create response missing id, attempting recovery",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		consommationID = uc.recoverCreatedID(ctx, request.GlobalBillID)
		if consommationID == 0 {
			return nil, &exceptions.CreateNotRecoveredError{ExpectedItemCount: expectedItemCount}
		}
		recovered = true

	case exceptions.IsAmbiguousCreateFailure(err):
		uc.Log.Warn("consommationUsecase.CreateWithRecovery ambiguous create failure, attempting recovery",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		consommationID = uc.recoverCreatedID(ctx, request.GlobalBillID)
		if consommationID == 0 {
			return nil, &exceptions.CreateNotRecoveredError{ExpectedItemCount: expectedItemCount, Err: err}
		}
		recovered = true

	default:
		// A clean HTTP error status is unambiguous: the backend rejected the
		// create and nothing was persisted. No recovery.
		uc.Log.Error("consommationUsecase.CreateWithRecovery create rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if recovered {
		uc.Reporter.ReportDataQuality(ctx, &contracts.DataQualityEvent{
			Kind:           contracts.AuditKindCreateRecovered,
			Detail:         "created consommation identity recovered after untrusted create response",
			ConsommationID: consommationID,
			GlobalBillID:   request.GlobalBillID,
		})
	}

	full, err := uc.ConsommationClient.FindConsommationByID(ctx, consommationID)
	if err != nil {
		// The record exists; degrade to whatever the create call returned so
		// the caller can still show something, flagged as partial.
		uc.Log.Error("consommationUsecase.CreateWithRecovery full fetch failed, returning partial data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingConsommationIDKey, consommationID),
			zap.Error(err),
		)
		return &responses.CreatedConsommation{
			Consommation:        created,
			ConsommationID:      consommationID,
			ExpectedItemCount:   expectedItemCount,
			ActualItemsReturned: 0,
			Recovered:           recovered,
			Partial:             true,
		}, nil
	}

	actualItemsReturned := len(full.BillItems)
	if actualItemsReturned != expectedItemCount {
		// Partial persistence under load is a known backend behavior; the
		// mismatch is surfaced as metadata, not an error.
		uc.Reporter.ReportDataQuality(ctx, &contracts.DataQualityEvent{
			Kind:           contracts.AuditKindItemCountMismatch,
			Detail:         fmt.Sprintf("submitted %d bill items, backend persisted %d", expectedItemCount, actualItemsReturned),
			ConsommationID: consommationID,
			GlobalBillID:   request.GlobalBillID,
		})
	}

	return &responses.CreatedConsommation{
		Consommation:        full,
		ConsommationID:      full.ConsommationID,
		ExpectedItemCount:   expectedItemCount,
		ActualItemsReturned: actualItemsReturned,
		Recovered:           recovered,
	}, nil
}

// recoverCreatedID is the two-stage, best-effort identity recovery. Stage a
// asks for the newest child of the parent bill; stage b lists all children
// and takes the highest id, relying on the backend assigning ids
// sequentially and never reusing them. Returns 0 when nothing was found.
func (uc *consommationUsecase) recoverCreatedID(ctx context.Context, globalBillID int) int {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	newest, err := uc.ConsommationClient.SearchConsommations(ctx, contracts.ConsommationSearchParams{
		GlobalBillID: globalBillID,
		Limit:        1,
		NewestFirst:  true,
	})
	if err != nil {
		uc.Log.Warn("consommationUsecase.recoverCreatedID newest-first query failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingGlobalBillIDKey, globalBillID),
			zap.Error(err),
		)
	} else if len(newest) > 0 && newest[0].ConsommationID > 0 {
		return newest[0].ConsommationID
	}

	all, err := uc.ConsommationClient.SearchConsommations(ctx, contracts.ConsommationSearchParams{
		GlobalBillID: globalBillID,
	})
	if err != nil {
		uc.Log.Warn("consommationUsecase.recoverCreatedID full list query failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingGlobalBillIDKey, globalBillID),
			zap.Error(err),
		)
		return 0
	}

	highestID := 0
	for index := range all {
		if all[index].ConsommationID > highestID {
			highestID = all[index].ConsommationID
		}
	}
	return highestID
}

func (uc *consommationUsecase) PollPaymentStatus(ctx context.Context, consommationIDs []int) responses.PaymentStatusMap {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("consommationUsecase.PollPaymentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("consommation_count", len(consommationIDs)),
	)

	// Rebuilt in full on every poll; a stale previous map is never mixed
	// with fresh results.
	statusMap := make(responses.PaymentStatusMap, len(consommationIDs))

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, consommationID := range consommationIDs {
		wg.Add(1)
		go func(consommationID int) {
			defer wg.Done()

			paid := false
			consommation, err := uc.ConsommationClient.FindConsommationByID(ctx, consommationID)
			if err != nil {
				uc.Log.Warn("consommationUsecase.PollPaymentStatus lookup failed, defaulting to unpaid",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Int(constvars.LoggingConsommationIDKey, consommationID),
					zap.Error(err),
				)
				uc.Reporter.ReportDataQuality(ctx, &contracts.DataQualityEvent{
					Kind:           contracts.AuditKindStatusLookupFailed,
					Detail:         "payment status lookup failed, reported as unpaid",
					ConsommationID: consommationID,
					Cause:          err.Error(),
				})
			} else {
				paid = consommation.IsPaid()
			}

			mu.Lock()
			statusMap[consommationID] = paid
			mu.Unlock()
		}(consommationID)
	}
	wg.Wait()

	return statusMap
}

func buildCreatePayload(request *requests.CreateConsommation) *openmrsdto.ConsommationCreateRequest {
	billItems := make([]openmrsdto.BillItemCreation, 0, len(request.BillItems))
	for _, item := range request.BillItems {
		billItems = append(billItems, openmrsdto.BillItemCreation{
			Service:       openmrsdto.ServiceIDRef{ServiceID: item.ServiceID},
			UnitPrice:     item.UnitPrice + UnitPriceEpsilon,
			Quantity:      item.Quantity,
			DrugFrequency: item.DrugFrequency,
		})
	}

	return &openmrsdto.ConsommationCreateRequest{
		GlobalBill:  openmrsdto.GlobalBillRef{GlobalBillID: request.GlobalBillID},
		Department:  openmrsdto.DepartmentRef{DepartmentID: request.DepartmentID},
		Beneficiary: openmrsdto.BeneficiaryRef{BeneficiaryID: request.BeneficiaryID},
		BillItems:   billItems,
	}
}
