package globalbills

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
	"net/url"

	"go.uber.org/zap"
)

type globalBillClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewGlobalBillClient(baseUrl string, logger *zap.Logger) contracts.GlobalBillClient {
	return &globalBillClient{
		BaseUrl: baseUrl + constvars.ResourceGlobalBill,
		Log:     logger,
	}
}

func (c *globalBillClient) FindGlobalBillByID(ctx context.Context, globalBillID int) (*openmrsdto.GlobalBill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	params := url.Values{}
	params.Add(constvars.URLQueryParamRepresentation, constvars.RepresentationFull)
	endpoint := fmt.Sprintf("%s/%d?%s", c.BaseUrl, globalBillID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("globalBillClient.FindGlobalBillByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingGlobalBillIDKey, globalBillID),
			zap.Error(err),
		)
		return nil, exceptions.NewTransportError(constvars.ResourceGlobalBill, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= constvars.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, exceptions.NewBackendError(constvars.ResourceGlobalBill, resp.StatusCode, string(bodyBytes))
	}

	globalBill := new(openmrsdto.GlobalBill)
	err = json.NewDecoder(resp.Body).Decode(&globalBill)
	if err != nil {
		return nil, exceptions.NewTransportError(constvars.ResourceGlobalBill, err)
	}

	return globalBill, nil
}
