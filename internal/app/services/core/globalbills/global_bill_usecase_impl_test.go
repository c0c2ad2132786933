package globalbills

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/exceptions"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeGlobalBillClient struct {
	findFn func(ctx context.Context, globalBillID int) (*openmrsdto.GlobalBill, error)
}

func (f *fakeGlobalBillClient) FindGlobalBillByID(ctx context.Context, globalBillID int) (*openmrsdto.GlobalBill, error) {
	return f.findFn(ctx, globalBillID)
}

type fakeConsommationClient struct {
	findFn   func(ctx context.Context, consommationID int) (*openmrsdto.Consommation, error)
	searchFn func(ctx context.Context, params contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error)
	createFn func(ctx context.Context, request *openmrsdto.ConsommationCreateRequest) (*openmrsdto.Consommation, error)
}

func (f *fakeConsommationClient) FindConsommationByID(ctx context.Context, consommationID int) (*openmrsdto.Consommation, error) {
	return f.findFn(ctx, consommationID)
}

func (f *fakeConsommationClient) SearchConsommations(ctx context.Context, params contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error) {
	return f.searchFn(ctx, params)
}

func (f *fakeConsommationClient) CreateConsommation(ctx context.Context, request *openmrsdto.ConsommationCreateRequest) (*openmrsdto.Consommation, error) {
	return f.createFn(ctx, request)
}

type recordingReporter struct {
	mu     sync.Mutex
	events []*contracts.DataQualityEvent
}

func (r *recordingReporter) ReportDataQuality(_ context.Context, event *contracts.DataQualityEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func billWithShare(amount float64, payments ...float64) openmrsdto.Consommation {
	patientBill := &openmrsdto.PatientBill{Amount: amount}
	for _, paid := range payments {
		patientBill.Payments = append(patientBill.Payments, openmrsdto.Payment{AmountPaid: paid})
	}
	return openmrsdto.Consommation{PatientBill: patientBill, PaymentStatus: constvars.BillStatusOpen}
}

func TestAggregateTotals(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Patient Share Amounts Are The Reference", func(t *testing.T) {
		uc := NewGlobalBillUsecase(&fakeGlobalBillClient{}, &fakeConsommationClient{
			searchFn: func(_ context.Context, params contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error) {
				assert.Equal(t, 7, params.GlobalBillID)
				return []openmrsdto.Consommation{
					billWithShare(1000, 600),
					billWithShare(500),
				}, nil
			},
		}, &recordingReporter{}, logger)

		totals := uc.AggregateTotals(context.Background(), 7)

		assert.Equal(t, 900.0, totals.DueAmount)
		assert.Equal(t, 600.0, totals.PaidAmount)
		assert.Equal(t, constvars.BillStatusOpen, totals.Status)
	})

	t.Run("Billed Total Used When No Patient Share Recorded", func(t *testing.T) {
		uc := NewGlobalBillUsecase(&fakeGlobalBillClient{}, &fakeConsommationClient{
			searchFn: func(_ context.Context, _ contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error) {
				return []openmrsdto.Consommation{
					{
						PaymentStatus: constvars.BillStatusOpen,
						BillItems: []openmrsdto.BillItem{
							{Quantity: 2, UnitPrice: 150},
							{Quantity: 1, UnitPrice: 200},
						},
					},
				}, nil
			},
		}, &recordingReporter{}, logger)

		totals := uc.AggregateTotals(context.Background(), 7)

		assert.Equal(t, 500.0, totals.DueAmount)
		assert.Equal(t, 0.0, totals.PaidAmount)
	})

	t.Run("Due Amount Never Negative On Overpayment", func(t *testing.T) {
		uc := NewGlobalBillUsecase(&fakeGlobalBillClient{}, &fakeConsommationClient{
			searchFn: func(_ context.Context, _ contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error) {
				return []openmrsdto.Consommation{billWithShare(300, 500)}, nil
			},
		}, &recordingReporter{}, logger)

		totals := uc.AggregateTotals(context.Background(), 7)

		assert.Equal(t, 0.0, totals.DueAmount)
		assert.Equal(t, 500.0, totals.PaidAmount)
	})

	t.Run("Status From Parent When Children Carry None", func(t *testing.T) {
		uc := NewGlobalBillUsecase(&fakeGlobalBillClient{
			findFn: func(_ context.Context, globalBillID int) (*openmrsdto.GlobalBill, error) {
				assert.Equal(t, 7, globalBillID)
				return &openmrsdto.GlobalBill{GlobalBillID: 7, Closed: true}, nil
			},
		}, &fakeConsommationClient{
			searchFn: func(_ context.Context, _ contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error) {
				return nil, nil
			},
		}, &recordingReporter{}, logger)

		totals := uc.AggregateTotals(context.Background(), 7)

		assert.Equal(t, constvars.BillStatusClosed, totals.Status)
		assert.Equal(t, 0.0, totals.DueAmount)
	})

	t.Run("Backend Failure Degrades To Unknown", func(t *testing.T) {
		reporter := &recordingReporter{}
		uc := NewGlobalBillUsecase(&fakeGlobalBillClient{}, &fakeConsommationClient{
			searchFn: func(_ context.Context, _ contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error) {
				return nil, exceptions.NewTransportError("/consommation", errors.New("connection refused"))
			},
		}, reporter, logger)

		totals := uc.AggregateTotals(context.Background(), 7)

		assert.Equal(t, 0.0, totals.DueAmount)
		assert.Equal(t, 0.0, totals.PaidAmount)
		assert.Empty(t, totals.Status, "unknown totals must not look fully paid")
		if assert.Len(t, reporter.events, 1) {
			assert.Equal(t, contracts.AuditKindAggregationFailure, reporter.events[0].Kind)
		}
	})
}

func TestListConsommations(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Pass Through", func(t *testing.T) {
		uc := NewGlobalBillUsecase(&fakeGlobalBillClient{}, &fakeConsommationClient{
			searchFn: func(_ context.Context, params contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error) {
				assert.Equal(t, 7, params.GlobalBillID)
				return []openmrsdto.Consommation{{ConsommationID: 11}, {ConsommationID: 12}}, nil
			},
		}, &recordingReporter{}, logger)

		consommations, err := uc.ListConsommations(context.Background(), 7)

		assert.NoError(t, err)
		assert.Len(t, consommations, 2)
	})

	t.Run("Error Propagates", func(t *testing.T) {
		backendErr := exceptions.NewBackendError(constvars.ResourceConsommation, 503, "")
		uc := NewGlobalBillUsecase(&fakeGlobalBillClient{}, &fakeConsommationClient{
			searchFn: func(_ context.Context, _ contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error) {
				return nil, backendErr
			},
		}, &recordingReporter{}, logger)

		_, err := uc.ListConsommations(context.Background(), 7)

		assert.ErrorIs(t, err, backendErr)
	})
}
