package insurancepolicies

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/exceptions"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

type insurancePolicyClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewInsurancePolicyClient(baseUrl string, logger *zap.Logger) contracts.InsurancePolicyClient {
	return &insurancePolicyClient{
		BaseUrl: baseUrl + constvars.ResourceInsurancePolicy,
		Log:     logger,
	}
}

func (c *insurancePolicyClient) SearchInsurancePolicies(ctx context.Context, params contracts.InsurancePolicySearchParams) ([]openmrsdto.InsurancePolicy, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	queryString := params.ToQueryParam().Encode()
	endpoint := c.BaseUrl + "?" + queryString

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("insurancePolicyClient.SearchInsurancePolicies error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.NewTransportError(constvars.ResourceInsurancePolicy, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= constvars.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, exceptions.NewBackendError(constvars.ResourceInsurancePolicy, resp.StatusCode, string(bodyBytes))
	}

	var result openmrsdto.InsurancePolicyListResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, exceptions.NewTransportError(constvars.ResourceInsurancePolicy, err)
	}

	return result.Results, nil
}
