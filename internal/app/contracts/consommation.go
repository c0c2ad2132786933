package contracts

import (
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/dto/requests"
	"billsync-service/internal/pkg/dto/responses"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
	"net/url"
	"strconv"
)

type ConsommationClient interface {
	FindConsommationByID(ctx context.Context, consommationID int) (*openmrsdto.Consommation, error)
	SearchConsommations(ctx context.Context, params ConsommationSearchParams) ([]openmrsdto.Consommation, error)
	CreateConsommation(ctx context.Context, request *openmrsdto.ConsommationCreateRequest) (*openmrsdto.Consommation, error)
}

type ConsommationSearchParams struct {
	GlobalBillID int
	Limit        int
	NewestFirst  bool
}

// ToQueryParam converts ConsommationSearchParams into URL query parameters
func (p ConsommationSearchParams) ToQueryParam() url.Values {
	params := url.Values{}

	if p.GlobalBillID > 0 {
		params.Add(constvars.URLQueryParamGlobalBillID, strconv.Itoa(p.GlobalBillID))
	}
	if p.Limit > 0 {
		params.Add(constvars.URLQueryParamLimit, strconv.Itoa(p.Limit))
	}
	if p.NewestFirst {
		params.Add(constvars.URLQueryParamOrder, constvars.OrderDescending)
	}
	params.Add(constvars.URLQueryParamRepresentation, constvars.RepresentationFull)

	return params
}

type ConsommationUsecase interface {
	// CreateWithRecovery performs the create protocol: epsilon-adjusted
	// submission, ambiguity classification, best-effort identity recovery and
	// authoritative re-fetch. It is the only operation that can return an
	// error to its caller.
	CreateWithRecovery(ctx context.Context, request *requests.CreateConsommation) (*responses.CreatedConsommation, error)

	// PollPaymentStatus rebuilds the paid-status map for the given ids. Every
	// id is present in the result; failed lookups default to false.
	PollPaymentStatus(ctx context.Context, consommationIDs []int) responses.PaymentStatusMap
}
