package insurances

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/exceptions"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

type insuranceClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewInsuranceClient(baseUrl string, logger *zap.Logger) contracts.InsuranceClient {
	return &insuranceClient{
		BaseUrl: baseUrl + constvars.ResourceInsurance,
		Log:     logger,
	}
}

func (c *insuranceClient) FindInsuranceByID(ctx context.Context, insuranceID int) (*openmrsdto.Insurance, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	endpoint := fmt.Sprintf("%s/%d", c.BaseUrl, insuranceID)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("insuranceClient.FindInsuranceByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingInsuranceIDKey, insuranceID),
			zap.Error(err),
		)
		return nil, exceptions.NewTransportError(constvars.ResourceInsurance, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= constvars.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, exceptions.NewBackendError(constvars.ResourceInsurance, resp.StatusCode, string(bodyBytes))
	}

	insurance := new(openmrsdto.Insurance)
	err = json.NewDecoder(resp.Body).Decode(&insurance)
	if err != nil {
		return nil, exceptions.NewTransportError(constvars.ResourceInsurance, err)
	}

	return insurance, nil
}

func (c *insuranceClient) ListInsurances(ctx context.Context) ([]openmrsdto.Insurance, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, c.BaseUrl, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("insuranceClient.ListInsurances error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.NewTransportError(constvars.ResourceInsurance, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= constvars.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, exceptions.NewBackendError(constvars.ResourceInsurance, resp.StatusCode, string(bodyBytes))
	}

	var result openmrsdto.InsuranceListResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, exceptions.NewTransportError(constvars.ResourceInsurance, err)
	}

	return result.Results, nil
}
