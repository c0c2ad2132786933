package contracts

import (
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/dto/requests"
	"billsync-service/internal/pkg/dto/responses"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
	"net/url"
)

type InsuranceClient interface {
	FindInsuranceByID(ctx context.Context, insuranceID int) (*openmrsdto.Insurance, error)
	ListInsurances(ctx context.Context) ([]openmrsdto.Insurance, error)
}

type InsurancePolicyClient interface {
	SearchInsurancePolicies(ctx context.Context, params InsurancePolicySearchParams) ([]openmrsdto.InsurancePolicy, error)
}

type InsurancePolicySearchParams struct {
	InsuranceCardNo string
}

// ToQueryParam converts InsurancePolicySearchParams into URL query parameters
func (p InsurancePolicySearchParams) ToQueryParam() url.Values {
	params := url.Values{}

	if p.InsuranceCardNo != "" {
		params.Add(constvars.URLQueryParamInsuranceCardNo, p.InsuranceCardNo)
	}

	return params
}

type RateUsecase interface {
	// ResolveRates walks the fallback chain (parent policy, own policy
	// snapshot, insurance name match) and always terminates with a result.
	// A failed chain yields the full-patient-liability default with
	// Resolved=false.
	ResolveRates(ctx context.Context, request *requests.ResolveRates) *responses.RateResolution
}
