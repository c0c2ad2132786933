package rates

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/dto/requests"
	"billsync-service/internal/pkg/dto/responses"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type rateUsecase struct {
	GlobalBillClient      contracts.GlobalBillClient
	ConsommationClient    contracts.ConsommationClient
	InsuranceClient       contracts.InsuranceClient
	InsurancePolicyClient contracts.InsurancePolicyClient
	Reporter              contracts.AuditReporter
	Log                   *zap.Logger
}

func NewRateUsecase(
	globalBillClient contracts.GlobalBillClient,
	consommationClient contracts.ConsommationClient,
	insuranceClient contracts.InsuranceClient,
	insurancePolicyClient contracts.InsurancePolicyClient,
	reporter contracts.AuditReporter,
	logger *zap.Logger,
) contracts.RateUsecase {
	return &rateUsecase{
		GlobalBillClient:      globalBillClient,
		ConsommationClient:    consommationClient,
		InsuranceClient:       insuranceClient,
		InsurancePolicyClient: insurancePolicyClient,
		Reporter:              reporter,
		Log:                   logger,
	}
}

// rateStrategy is one step of the fallback chain. resolve returns a non-nil
// resolution on success, or nil plus the reason the step did not apply or
// failed. Step failures never abort the chain.
type rateStrategy struct {
	name    string
	resolve func(ctx context.Context) (*responses.RateResolution, string)
}

func (uc *rateUsecase) ResolveRates(ctx context.Context, request *requests.ResolveRates) *responses.RateResolution {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("rateUsecase.ResolveRates called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingConsommationIDKey, request.ConsommationID),
		zap.Int(constvars.LoggingGlobalBillIDKey, request.GlobalBillID),
	)

	// The bill's own record feeds both snapshot steps; fetched at most once.
	var consommation *openmrsdto.Consommation
	loadConsommation := func(ctx context.Context) (*openmrsdto.Consommation, error) {
		if consommation != nil {
			return consommation, nil
		}
		fetched, err := uc.ConsommationClient.FindConsommationByID(ctx, request.ConsommationID)
		if err != nil {
			return nil, err
		}
		consommation = fetched
		return consommation, nil
	}

	// Precedence: the parent bill's current policy is authoritative because
	// policies can change after the bill was created; the bill's own snapshot
	// covers orphaned sub-bills; name matching is a last resort for legacy
	// records without structured references.
	strategies := []rateStrategy{
		{name: "parent_policy", resolve: func(ctx context.Context) (*responses.RateResolution, string) {
			return uc.resolveFromParentPolicy(ctx, request.GlobalBillID)
		}},
		{name: "own_policy", resolve: func(ctx context.Context) (*responses.RateResolution, string) {
			return uc.resolveFromOwnPolicy(ctx, loadConsommation)
		}},
		{name: "name_match", resolve: func(ctx context.Context) (*responses.RateResolution, string) {
			return uc.resolveFromInsuranceName(ctx, request.ConsommationID, loadConsommation)
		}},
	}

	var failures []string
	for _, strategy := range strategies {
		resolution, reason := strategy.resolve(ctx)
		if resolution != nil {
			uc.Log.Info("rateUsecase.ResolveRates resolved",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("strategy", strategy.name),
				zap.Float64("insurance_rate", resolution.InsuranceRate),
			)
			return resolution
		}
		failures = append(failures, strategy.name+": "+reason)
	}

	// Full patient liability is the terminal default. Resolved=false lets the
	// UI distinguish "not insured" from "resolution failed".
	uc.Reporter.ReportDataQuality(ctx, &contracts.DataQualityEvent{
		Kind:           contracts.AuditKindResolutionDefault,
		Detail:         "rate resolution defaulted to full patient liability",
		ConsommationID: request.ConsommationID,
		GlobalBillID:   request.GlobalBillID,
		Cause:          strings.Join(failures, "; "),
	})
	return &responses.RateResolution{
		InsuranceRate: 0,
		PatientRate:   100,
		Resolved:      false,
	}
}

func (uc *rateUsecase) resolveFromParentPolicy(ctx context.Context, globalBillID int) (*responses.RateResolution, string) {
	if globalBillID <= 0 {
		return nil, "no parent bill id supplied"
	}

	globalBill, err := uc.GlobalBillClient.FindGlobalBillByID(ctx, globalBillID)
	if err != nil {
		return nil, fmt.Sprintf("parent bill fetch failed: %v", err)
	}

	insuranceID, ok := globalBill.CurrentInsuranceID()
	if !ok {
		return nil, "parent bill carries no insurance policy"
	}

	insurance, err := uc.InsuranceClient.FindInsuranceByID(ctx, insuranceID)
	if err != nil {
		return nil, fmt.Sprintf("insurance fetch failed: %v", err)
	}
	return uc.resolutionFromInsurance(ctx, insurance, globalBillID)
}

func (uc *rateUsecase) resolveFromOwnPolicy(ctx context.Context, loadConsommation func(context.Context) (*openmrsdto.Consommation, error)) (*responses.RateResolution, string) {
	consommation, err := loadConsommation(ctx)
	if err != nil {
		return nil, fmt.Sprintf("consommation fetch failed: %v", err)
	}

	cardNumber := consommation.PolicyCardNumber()
	if cardNumber == "" {
		return nil, "no policy card number recorded on the bill"
	}

	policies, err := uc.InsurancePolicyClient.SearchInsurancePolicies(ctx, contracts.InsurancePolicySearchParams{
		InsuranceCardNo: cardNumber,
	})
	if err != nil {
		return nil, fmt.Sprintf("policy lookup failed for card %s: %v", cardNumber, err)
	}
	if len(policies) == 0 || policies[0].Insurance == nil {
		return nil, fmt.Sprintf("no policy found for card %s", cardNumber)
	}

	// Policies embed a shallow insurance reference; re-fetch by id for the
	// full record with the rate.
	insurance, err := uc.InsuranceClient.FindInsuranceByID(ctx, policies[0].Insurance.InsuranceID)
	if err != nil {
		return nil, fmt.Sprintf("insurance fetch failed: %v", err)
	}
	return uc.resolutionFromInsurance(ctx, insurance, 0)
}

func (uc *rateUsecase) resolveFromInsuranceName(ctx context.Context, consommationID int, loadConsommation func(context.Context) (*openmrsdto.Consommation, error)) (*responses.RateResolution, string) {
	consommation, err := loadConsommation(ctx)
	if err != nil {
		return nil, fmt.Sprintf("consommation fetch failed: %v", err)
	}

	insuranceName := consommation.RecordedInsuranceName()
	if insuranceName == "" {
		return nil, "no insurance name recorded on the bill"
	}

	insurances, err := uc.InsuranceClient.ListInsurances(ctx)
	if err != nil {
		return nil, fmt.Sprintf("insurance list failed: %v", err)
	}

	for index := range insurances {
		if !strings.EqualFold(insurances[index].Name, insuranceName) {
			continue
		}
		if !insurances[index].HasRate() {
			continue
		}
		uc.Reporter.ReportDataQuality(ctx, &contracts.DataQualityEvent{
			Kind:           contracts.AuditKindNameMatchFallback,
			Detail:         fmt.Sprintf("insurance resolved by name match on %q", insuranceName),
			ConsommationID: consommationID,
		})
		rate := insurances[index].RateValue()
		return &responses.RateResolution{
			InsuranceRate: rate,
			PatientRate:   100 - rate,
			InsuranceName: insurances[index].Name,
			Resolved:      true,
		}, ""
	}
	return nil, fmt.Sprintf("no insurance matches name %q with a defined rate", insuranceName)
}

func (uc *rateUsecase) resolutionFromInsurance(ctx context.Context, insurance *openmrsdto.Insurance, globalBillID int) (*responses.RateResolution, string) {
	if !insurance.HasRate() {
		uc.Reporter.ReportDataQuality(ctx, &contracts.DataQualityEvent{
			Kind:         contracts.AuditKindMissingRate,
			Detail:       fmt.Sprintf("insurance %q has no rate defined", insurance.Name),
			GlobalBillID: globalBillID,
		})
		return nil, fmt.Sprintf("insurance %q has no rate", insurance.Name)
	}

	rate := insurance.RateValue()
	return &responses.RateResolution{
		InsuranceRate: rate,
		PatientRate:   100 - rate,
		InsuranceName: insurance.Name,
		Resolved:      true,
	}, ""
}
