package consommations

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/exceptions"
	"billsync-service/internal/pkg/openmrsdto"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

type consommationClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewConsommationClient(baseUrl string, logger *zap.Logger) contracts.ConsommationClient {
	return &consommationClient{
		BaseUrl: baseUrl + constvars.ResourceConsommation,
		Log:     logger,
	}
}

func (c *consommationClient) FindConsommationByID(ctx context.Context, consommationID int) (*openmrsdto.Consommation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	params := url.Values{}
	params.Add(constvars.URLQueryParamRepresentation, constvars.RepresentationFull)
	endpoint := fmt.Sprintf("%s/%d?%s", c.BaseUrl, consommationID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("consommationClient.FindConsommationByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingConsommationIDKey, consommationID),
			zap.Error(err),
		)
		return nil, exceptions.NewTransportError(constvars.ResourceConsommation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= constvars.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.Log.Error("consommationClient.FindConsommationByID backend error status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingConsommationIDKey, consommationID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.NewBackendError(constvars.ResourceConsommation, resp.StatusCode, string(bodyBytes))
	}

	consommation := new(openmrsdto.Consommation)
	err = json.NewDecoder(resp.Body).Decode(&consommation)
	if err != nil {
		return nil, exceptions.NewTransportError(constvars.ResourceConsommation, err)
	}

	return consommation, nil
}

func (c *consommationClient) SearchConsommations(ctx context.Context, params contracts.ConsommationSearchParams) ([]openmrsdto.Consommation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	queryString := params.ToQueryParam().Encode()
	endpoint := c.BaseUrl + "?" + queryString

	c.Log.Info("consommationClient.SearchConsommations built URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("url", endpoint),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("consommationClient.SearchConsommations error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.NewTransportError(constvars.ResourceConsommation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= constvars.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, exceptions.NewBackendError(constvars.ResourceConsommation, resp.StatusCode, string(bodyBytes))
	}

	var result openmrsdto.ConsommationListResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, exceptions.NewTransportError(constvars.ResourceConsommation, err)
	}

	return result.Results, nil
}

func (c *consommationClient) CreateConsommation(ctx context.Context, request *openmrsdto.ConsommationCreateRequest) (*openmrsdto.Consommation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	c.Log.Info("consommationClient.CreateConsommation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingGlobalBillIDKey, request.GlobalBill.GlobalBillID),
		zap.Int("bill_items", len(request.BillItems)),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("consommationClient.CreateConsommation error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.NewTransportError(constvars.ResourceConsommation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= constvars.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.Log.Error("consommationClient.CreateConsommation backend error status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.NewBackendError(constvars.ResourceConsommation, resp.StatusCode, string(bodyBytes))
	}

	created := new(openmrsdto.Consommation)
	err = json.NewDecoder(resp.Body).Decode(&created)
	if err != nil {
		return nil, exceptions.NewTransportError(constvars.ResourceConsommation, err)
	}

	return created, nil
}
